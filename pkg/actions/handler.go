package actions

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/conductor-go/pkg/a2a"
	"github.com/theapemachine/conductor-go/pkg/catalog"
	"github.com/theapemachine/conductor-go/pkg/protocol"
	"github.com/theapemachine/conductor-go/pkg/state"
)

/*
TaskClient is the slice of the protocol client the handler needs: the
non-blocking send paired with a bounded wait.
*/
type TaskClient interface {
	SendAndWait(
		ctx context.Context,
		text string,
		opts protocol.SendOptions,
		pollInterval time.Duration,
		maxWait time.Duration,
	) (*a2a.Task, error)
}

// ClientFactory builds a task client for an agent endpoint. The default
// factory shares one tracker and bearer token across all endpoints.
type ClientFactory func(endpoint string) TaskClient

// Trajectory is one entry of the per-turn audit trail: what was asked, the
// task that carried it, and how it ended.
type Trajectory struct {
	AgentID  string `json:"agentId"`
	Query    string `json:"query"`
	TaskID   string `json:"taskId"`
	State    string `json:"state"`
	Response string `json:"response,omitempty"`
}

/*
Handler executes one parsed action at a time against the protocol client
and the run's state managers. Errors on a single action are converted into
error-flagged outputs so that one failing agent never terminates the run.
*/
type Handler struct {
	registry   *catalog.Registry
	factory    ClientFactory
	clients    map[string]TaskClient
	scratchpad *state.Scratchpad
	todo       *state.Todo

	pollInterval time.Duration
	maxWait      time.Duration

	trajectories map[string][]Trajectory

	finishMessage string
	finishSummary string
}

type HandlerOption func(*Handler)

// WithWaits overrides the poll interval and deadline applied to every
// agent query. These belong to the workflow, not the client.
func WithWaits(pollInterval time.Duration, maxWait time.Duration) HandlerOption {
	return func(handler *Handler) {
		handler.pollInterval = pollInterval
		handler.maxWait = maxWait
	}
}

// WithClientFactory swaps the protocol client construction, used by tests
// and by callers that need custom transport settings.
func WithClientFactory(factory ClientFactory) HandlerOption {
	return func(handler *Handler) {
		handler.factory = factory
	}
}

func NewHandler(
	registry *catalog.Registry,
	scratchpad *state.Scratchpad,
	todo *state.Todo,
	options ...HandlerOption,
) *Handler {
	tracker := protocol.NewTracker()

	handler := &Handler{
		registry:   registry,
		scratchpad: scratchpad,
		todo:       todo,
		clients:    make(map[string]TaskClient),
		factory: func(endpoint string) TaskClient {
			return protocol.NewClient(endpoint, protocol.WithTracker(tracker))
		},
		pollInterval: 2 * time.Second,
		maxWait:      2 * time.Minute,
		trajectories: make(map[string][]Trajectory),
	}

	for _, option := range options {
		option(handler)
	}

	return handler
}

/*
Handle executes a single action and returns its output string plus an error
flag. The error flag marks the output as a failure report; Handle itself
never returns a Go error because a failed action must not abort the turn.
*/
func (handler *Handler) Handle(ctx context.Context, action Action) (string, bool) {
	switch a := action.(type) {
	case QueryAgent:
		return handler.handleQueryAgent(ctx, a)
	case UpdateScratchpad:
		return handler.handleUpdateScratchpad(a)
	case UpdateTodo:
		return handler.handleUpdateTodo(a)
	case FinishStage:
		return handler.handleFinishStage(a)
	}

	return fmt.Sprintf("unknown action type: %T", action), true
}

func (handler *Handler) handleQueryAgent(ctx context.Context, action QueryAgent) (string, bool) {
	log.Info("querying agent", "agent", action.AgentID, "query", preview(action.Query, 100))

	card, err := handler.registry.Lookup(action.AgentID)
	if err != nil {
		return fmt.Sprintf("Cannot query agent: %s", err), true
	}

	client := handler.clientFor(card.URL)

	task, err := client.SendAndWait(
		ctx,
		action.Query,
		protocol.SendOptions{ContextID: action.ContextID},
		handler.pollInterval,
		handler.maxWait,
	)

	if err != nil {
		var timeout *protocol.TimeoutError
		if stderrors.As(err, &timeout) {
			handler.record(action, timeout.LastTask, "")
			return fmt.Sprintf("Agent %s gave no response within the deadline (%s)", action.AgentID, timeout.Waited), true
		}

		handler.record(action, nil, "")
		log.Error("agent query failed", "agent", action.AgentID, "error", err)
		return fmt.Sprintf("Error querying agent %s: %s", action.AgentID, err), true
	}

	switch task.Status.State {
	case a2a.TaskStateCompleted:
		output := task.Output()
		handler.record(action, task, output)
		return fmt.Sprintf("Agent %s responded:\n%s", action.AgentID, output), false
	case a2a.TaskStateFailed:
		handler.record(action, task, task.Error)
		return fmt.Sprintf("Agent %s task failed: %s", action.AgentID, task.Error), true
	default:
		// Canceled and rejected tasks often carry the reason as the
		// agent's last message.
		detail := ""
		if message := task.LastMessage(); message != nil {
			detail = message.String()
		}

		handler.record(action, task, detail)

		if detail != "" {
			return fmt.Sprintf("Agent %s task did not complete (%s): %s", action.AgentID, task.Status.State, detail), true
		}
		return fmt.Sprintf("Agent %s task did not complete: %s", action.AgentID, task.Status.State), true
	}
}

func (handler *Handler) clientFor(endpoint string) TaskClient {
	if client, ok := handler.clients[endpoint]; ok {
		return client
	}

	client := handler.factory(endpoint)
	handler.clients[endpoint] = client
	return client
}

// record appends an audit entry for the query. It is called on every path,
// error paths included, so the trajectory log is always complete.
func (handler *Handler) record(action QueryAgent, task *a2a.Task, response string) {
	entry := Trajectory{
		AgentID:  action.AgentID,
		Query:    action.Query,
		Response: response,
		State:    string(a2a.TaskStateUnknown),
	}

	if task != nil {
		entry.TaskID = task.ID
		entry.State = string(task.Status.State)
	}

	handler.trajectories[action.AgentID] = append(handler.trajectories[action.AgentID], entry)
}

func (handler *Handler) handleUpdateScratchpad(action UpdateScratchpad) (string, bool) {
	switch action.Operation {
	case ScratchpadAppend:
		handler.scratchpad.Append(action.Content)
		return "Scratchpad updated (appended)", false
	case ScratchpadReplace:
		handler.scratchpad.Replace(action.Content)
		return "Scratchpad updated (replaced)", false
	case ScratchpadClear:
		handler.scratchpad.Clear()
		return "Scratchpad cleared", false
	}

	return fmt.Sprintf("Unknown scratchpad operation: %s", action.Operation), true
}

func (handler *Handler) handleUpdateTodo(action UpdateTodo) (string, bool) {
	switch action.Operation {
	case TodoAdd:
		handler.todo.Add(action.Item)
		return fmt.Sprintf("Added todo item: %s", action.Item), false
	case TodoComplete:
		if action.Index == nil {
			return "Complete operation requires index", true
		}
		if !handler.todo.Complete(*action.Index) {
			return fmt.Sprintf("Todo index %d out of bounds", *action.Index), true
		}
		return fmt.Sprintf("Completed todo item %d", *action.Index), false
	case TodoRemove:
		if action.Index == nil {
			return "Remove operation requires index", true
		}
		if !handler.todo.Remove(*action.Index) {
			return fmt.Sprintf("Todo index %d out of bounds", *action.Index), true
		}
		return fmt.Sprintf("Removed todo item %d", *action.Index), false
	}

	return fmt.Sprintf("Unknown todo operation: %s", action.Operation), true
}

func (handler *Handler) handleFinishStage(action FinishStage) (string, bool) {
	handler.finishMessage = action.Message
	handler.finishSummary = action.Summary

	log.Info("stage finished", "message", action.Message)
	return fmt.Sprintf("Stage finished: %s", action.Message), false
}

// Finish returns the message and summary recorded by the last FinishStage
// action.
func (handler *Handler) Finish() (string, string) {
	return handler.finishMessage, handler.finishSummary
}

// DrainTrajectories returns the accumulated audit trail and clears it for
// the next turn.
func (handler *Handler) DrainTrajectories() map[string][]Trajectory {
	if len(handler.trajectories) == 0 {
		return nil
	}

	drained := handler.trajectories
	handler.trajectories = make(map[string][]Trajectory)
	return drained
}
