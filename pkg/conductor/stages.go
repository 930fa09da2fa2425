package conductor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

/*
Stage is one phase of the overall workflow. Each stage runs as an
independent bounded conversation loop with its own system prompt; the
finish summary of one stage is injected into the question of the next.
*/
type Stage struct {
	Name     string
	System   string
	MaxTurns int
}

// StageResult pairs a stage with its run outcome.
type StageResult struct {
	Stage  string  `json:"stage"`
	Result *Result `json:"result"`
}

// DefaultStages returns the research, plan and implement sequence.
func DefaultStages(maxTurns int) []Stage {
	return []Stage{
		{Name: "research", System: researchSystemPrompt, MaxTurns: maxTurns},
		{Name: "plan", System: planSystemPrompt, MaxTurns: maxTurns},
		{Name: "implement", System: implementSystemPrompt, MaxTurns: maxTurns},
	}
}

/*
RunStages executes the stages in order. A stage that fails to complete
stops the sequence; the partial results are still returned so the caller
can inspect how far the workflow got.
*/
func (conductor *Conductor) RunStages(ctx context.Context, question string, stages []Stage) ([]StageResult, error) {
	results := make([]StageResult, 0, len(stages))
	stageQuestion := question

	for _, stage := range stages {
		log.Info("starting stage", "stage", stage.Name, "maxTurns", stage.MaxTurns)

		conductor.system = stage.System

		result, err := conductor.Run(ctx, stageQuestion, stage.MaxTurns)
		if err != nil {
			return results, fmt.Errorf("stage %s: %w", stage.Name, err)
		}

		results = append(results, StageResult{Stage: stage.Name, Result: result})

		if !result.Completed {
			log.Warn("stage did not complete", "stage", stage.Name, "stalled", result.Stalled)
			break
		}

		// The next stage continues from this stage's summary.
		stageQuestion = fmt.Sprintf("%s\n\n## Previous Stage (%s)\n%s", question, stage.Name, result.FinishSummary)
	}

	return results, nil
}

const researchSystemPrompt = defaultSystemPrompt + `

You are in the research stage. Query the available agents to gather the
information the task needs, organize findings in the scratchpad, and track
open questions in the todo list. Finish the stage when the findings are
sufficient to plan from.`

const planSystemPrompt = defaultSystemPrompt + `

You are in the planning stage. Using the research summary, produce a
step-by-step plan: which agent to involve at each step, what to ask, and
what output to expect. Record the plan in the scratchpad and finish the
stage with the plan as the summary.`

const implementSystemPrompt = defaultSystemPrompt + `

You are in the implementation stage. Execute the plan step by step through
agent queries, checking off todo items as steps complete. Finish the stage
with the final deliverable as the summary.`
