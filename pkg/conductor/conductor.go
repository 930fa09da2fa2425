package conductor

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/conductor-go/pkg/actions"
	"github.com/theapemachine/conductor-go/pkg/catalog"
	"github.com/theapemachine/conductor-go/pkg/provider"
	"github.com/theapemachine/conductor-go/pkg/state"
)

// stallLimit is the number of consecutive no-op turns after which a run is
// declared stalled.
const stallLimit = 3

/*
Result is the run output contract handed to external consumers.
*/
type Result struct {
	Completed     bool             `json:"completed"`
	FinishMessage string           `json:"finishMessage,omitempty"`
	FinishSummary string           `json:"finishSummary,omitempty"`
	TurnsExecuted int              `json:"turnsExecuted"`
	Scratchpad    string           `json:"scratchpad"`
	Todo          []state.TodoItem `json:"todo"`
	Stalled       bool             `json:"stalled,omitempty"`
}

/*
Conductor drives the conversation loop: build a prompt from the current
state, obtain directive text from the generator, execute the turn, append
it to history, and decide whether to continue. One conductor belongs to one
workflow run.
*/
type Conductor struct {
	registry   *catalog.Registry
	scratchpad *state.Scratchpad
	todo       *state.Todo
	history    *History
	executor   *Executor
	generator  provider.Interface

	system      string
	model       string
	temperature float64
	maxTokens   int64
}

type Option func(*Conductor)

// WithSystemPrompt sets the system message used for every directive
// request. The agent roster is appended at run time.
func WithSystemPrompt(system string) Option {
	return func(conductor *Conductor) {
		conductor.system = system
	}
}

// WithModel selects the generator model and sampling settings.
func WithModel(model string, temperature float64, maxTokens int64) Option {
	return func(conductor *Conductor) {
		conductor.model = model
		conductor.temperature = temperature
		conductor.maxTokens = maxTokens
	}
}

// WithExecutor swaps the turn executor, used by tests.
func WithExecutor(executor *Executor) Option {
	return func(conductor *Conductor) {
		conductor.executor = executor
	}
}

func New(
	registry *catalog.Registry,
	generator provider.Interface,
	handler *actions.Handler,
	scratchpad *state.Scratchpad,
	todo *state.Todo,
	options ...Option,
) *Conductor {
	conductor := &Conductor{
		registry:    registry,
		scratchpad:  scratchpad,
		todo:        todo,
		history:     NewHistory(100),
		executor:    NewExecutor(actions.NewParser(), handler),
		generator:   generator,
		system:      defaultSystemPrompt,
		model:       "claude-sonnet-4-0",
		temperature: 0.0,
		maxTokens:   4096,
	}

	for _, option := range options {
		option(conductor)
	}

	return conductor
}

// History exposes the run's conversation history for audit.
func (conductor *Conductor) History() *History {
	return conductor.history
}

/*
Run executes the conversation loop until the generator finishes the stage,
the turn budget is exhausted, or the run stalls. Budget exhaustion and
stalls are defined outcomes, not errors: the result comes back with
Completed false so the caller can decide whether to retry with a larger
budget.
*/
func (conductor *Conductor) Run(ctx context.Context, question string, maxTurns int) (*Result, error) {
	result := &Result{}
	consecutiveNoOps := 0

	for turnNum := 1; turnNum <= maxTurns; turnNum++ {
		log.Info("executing turn", "turn", turnNum, "max", maxTurns)

		directive, err := conductor.generator.Generate(ctx, provider.Params{
			System:      conductor.systemPrompt(),
			User:        conductor.buildPrompt(question),
			Model:       conductor.model,
			Temperature: conductor.temperature,
			MaxTokens:   conductor.maxTokens,
		})

		if err != nil {
			return nil, err
		}

		execution := conductor.executor.Execute(ctx, directive)
		result.TurnsExecuted = turnNum

		conductor.history.Append(&Turn{
			Directive:    directive,
			Actions:      execution.Actions,
			Responses:    execution.Responses,
			Trajectories: execution.Trajectories,
		})

		if execution.NoOp {
			consecutiveNoOps++
			log.Warn("no actions attempted", "consecutive", consecutiveNoOps)

			if consecutiveNoOps >= stallLimit {
				log.Error("run stalled", "turns", turnNum)
				result.Stalled = true
				break
			}
			continue
		}
		consecutiveNoOps = 0

		if execution.Done {
			log.Info("stage complete", "message", execution.FinishMessage)
			result.Completed = true
			result.FinishMessage = execution.FinishMessage
			result.FinishSummary = execution.FinishSummary
			break
		}
	}

	result.Scratchpad = conductor.scratchpad.Content()
	result.Todo = conductor.todo.Items()

	return result, nil
}

func (conductor *Conductor) systemPrompt() string {
	return conductor.system + "\n\n## Available Agents\n\n" + conductor.registry.String()
}

func (conductor *Conductor) buildPrompt(question string) string {
	var sb strings.Builder

	sb.WriteString("## Current Task\n")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString(conductor.scratchpad.Prompt())
	sb.WriteString("\n\n")
	sb.WriteString(conductor.todo.Prompt())
	sb.WriteString("\n\n## Conversation History\n")
	sb.WriteString(conductor.history.Prompt(0))
	sb.WriteString("\n\n## Instructions\n")
	sb.WriteString("Use the available actions to work on the task. Query agents, organize findings in the scratchpad, track remaining work in the todo list. When the task is complete, use the finish_stage action.")

	return sb.String()
}

const defaultSystemPrompt = `You coordinate a team of remote agents through typed actions. Respond with action blocks of the form:

<action type="query_agent">
  <agent_id>alias</agent_id>
  <query>what to ask</query>
</action>

<action type="update_scratchpad">
  <operation>append</operation>
  <content>notes</content>
</action>

<action type="update_todo">
  <operation>add</operation>
  <item>remaining work</item>
</action>

<action type="finish_stage">
  <message>short completion message</message>
  <summary>full summary of the stage outcome</summary>
</action>

Text outside action blocks is treated as narration and ignored.`
