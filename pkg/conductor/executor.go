package conductor

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/conductor-go/pkg/actions"
)

/*
ExecutionResult is the turn-level outcome assembled by the executor.
*/
type ExecutionResult struct {
	Actions       []actions.Action
	Responses     []string
	HasError      bool
	Done          bool
	FinishMessage string
	FinishSummary string
	Trajectories  map[string][]actions.Trajectory
	// NoOp marks a turn where the directive contained no action attempt at
	// all. Consecutive no-op turns are the loop's stall signal.
	NoOp bool
}

/*
Executor runs one turn: parse the directive, then execute each action in
strict textual order. It holds no state of its own; everything mutable
lives in the handler and the state managers behind it.
*/
type Executor struct {
	parser  *actions.Parser
	handler *actions.Handler
}

func NewExecutor(parser *actions.Parser, handler *actions.Handler) *Executor {
	return &Executor{
		parser:  parser,
		handler: handler,
	}
}

/*
Execute parses the directive and executes the resulting actions in order.
Actions never run concurrently: later actions in the same turn may depend
on state staged by earlier ones. The first finish_stage action ends the
turn; any blocks after it are not executed.
*/
func (executor *Executor) Execute(ctx context.Context, directive string) ExecutionResult {
	parsed, parseErrs, foundAttempt := executor.parser.Parse(directive)

	result := ExecutionResult{}

	if len(parsed) == 0 && !foundAttempt {
		log.Debug("directive contained no action attempt")
		result.NoOp = true
		return result
	}

	for _, parseErr := range parseErrs {
		result.HasError = true
		result.Responses = append(result.Responses, "[parse error] "+parseErr)
	}

	for _, action := range parsed {
		output, isError := executor.handler.Handle(ctx, action)

		result.Actions = append(result.Actions, action)
		result.Responses = append(result.Responses, output)

		if isError {
			result.HasError = true
		}

		if action.Kind() == actions.KindFinishStage {
			result.Done = true
			result.FinishMessage, result.FinishSummary = executor.handler.Finish()
			break
		}
	}

	result.Trajectories = executor.handler.DrainTrajectories()

	return result
}
