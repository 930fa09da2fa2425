package protocol

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/theapemachine/conductor-go/pkg/a2a"
	"github.com/theapemachine/conductor-go/pkg/errors"
	"github.com/theapemachine/conductor-go/pkg/jsonrpc"
)

/*
Client issues task lifecycle requests to one remote agent endpoint and keeps
every observed task in a shared tracker. Send is non-blocking; WaitFor is
the only operation permitted to suspend the caller, and it does so with an
explicit poll interval and deadline rather than implicit blocking I/O.
*/
type Client struct {
	rpc     *jsonrpc.RPCClient
	tracker *Tracker
}

type ClientOption func(*Client)

// WithToken supplies the bearer token used on every request.
func WithToken(token string) ClientOption {
	return func(client *Client) {
		client.rpc.WithToken(token)
	}
}

// WithTracker shares an existing tracker between clients, so that tasks
// issued to different agents land in one run-wide index.
func WithTracker(tracker *Tracker) ClientOption {
	return func(client *Client) {
		client.tracker = tracker
	}
}

func NewClient(endpoint string, options ...ClientOption) *Client {
	client := &Client{
		rpc:     jsonrpc.NewRPCClient(endpoint),
		tracker: NewTracker(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Tracker exposes the run-wide task index.
func (client *Client) Tracker() *Tracker {
	return client.tracker
}

// SendOptions carries the optional identity fields of a send.
type SendOptions struct {
	ContextID        string
	TaskID           string
	ReferenceTaskIDs []string
}

/*
Send constructs a task request, transmits it and returns the task parsed
from the immediate response, typically still in the submitted state. Task
and context ids are generated client-side when the caller does not supply
them.
*/
func (client *Client) Send(ctx context.Context, text string, opts SendOptions) (*a2a.Task, error) {
	taskID := opts.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}

	contextID := opts.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}

	params := a2a.TaskSendParams{
		ID:               taskID,
		ContextID:        contextID,
		Message:          *a2a.NewTextMessage("user", text),
		ReferenceTaskIDs: opts.ReferenceTaskIDs,
	}

	log.Debug("sending task", "task", taskID, "context", contextID)

	var task a2a.Task
	if err := client.rpc.Call(ctx, "tasks/send", params, &task); err != nil {
		return nil, err
	}

	if task.ID == "" {
		return nil, &errors.ProtocolError{Op: "tasks/send", Reason: "response task has no id"}
	}

	if task.Status.State == "" {
		task.ToStatus(a2a.TaskStateSubmitted)
	}

	client.tracker.Add(&task)

	log.Info("task created", "task", task.ID, "state", task.Status.State)
	return &task, nil
}

// Fetch performs a one-shot status read. It never blocks beyond the single
// round trip.
func (client *Client) Fetch(ctx context.Context, taskID string) (*a2a.Task, error) {
	params := a2a.TaskQueryParams{
		TaskIDParams: a2a.TaskIDParams{ID: taskID},
	}

	var task a2a.Task
	if err := client.rpc.Call(ctx, "tasks/get", params, &task); err != nil {
		return nil, err
	}

	if task.ID == "" {
		return nil, &errors.ProtocolError{Op: "tasks/get", Reason: "response task has no id"}
	}

	client.tracker.Add(&task)
	return &task, nil
}

// List returns the tracked tasks, optionally filtered by context. This is a
// read-only projection from the tracker; no request leaves the process.
func (client *Client) List(contextID string) []*a2a.Task {
	return client.tracker.List(contextID)
}

/*
Cancel requests cancellation of a task. Canceling a task that already
reached a terminal state is an idempotent no-op returning the tracked
terminal record, never an error.
*/
func (client *Client) Cancel(ctx context.Context, taskID string) (*a2a.Task, error) {
	if tracked := client.tracker.Get(taskID); tracked != nil && tracked.Status.State.Terminal() {
		log.Debug("cancel on terminal task is a no-op", "task", taskID, "state", tracked.Status.State)
		return tracked, nil
	}

	params := a2a.TaskIDParams{ID: taskID}

	var task a2a.Task
	if err := client.rpc.Call(ctx, "tasks/cancel", params, &task); err != nil {
		var rpcErr *errors.RpcError
		if stderrors.As(err, &rpcErr) && rpcErr.Code == errors.ErrTaskNotCancelable.Code {
			// The remote raced us to a terminal state; fetch the final record.
			return client.Fetch(ctx, taskID)
		}
		return nil, err
	}

	client.tracker.Add(&task)
	return &task, nil
}

/*
WaitFor polls the task at pollInterval until it reaches a terminal state or
maxWait elapses. On timeout it returns a *TimeoutError carrying the last
observed non-terminal task.
*/
func (client *Client) WaitFor(
	ctx context.Context,
	taskID string,
	pollInterval time.Duration,
	maxWait time.Duration,
) (*a2a.Task, error) {
	start := time.Now()
	deadline := start.Add(maxWait)

	log.Debug("waiting for task", "task", taskID, "interval", pollInterval, "deadline", maxWait)

	var last *a2a.Task

	for {
		task, err := client.Fetch(ctx, taskID)
		if err != nil {
			return nil, err
		}
		last = task

		if task.Status.State.Terminal() {
			log.Info("task reached terminal state", "task", taskID, "state", task.Status.State)
			return task, nil
		}

		// The deadline bounds the wait, not the poll count: the final
		// fetch happens at or after the deadline, never before.
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, &TimeoutError{TaskID: taskID, Waited: time.Since(start), LastTask: last}
		}

		sleep := pollInterval
		if remaining < sleep {
			sleep = remaining
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
}

// SendAndWait is the send + poll pairing used by every agent query: a
// non-blocking send followed by a bounded wait.
func (client *Client) SendAndWait(
	ctx context.Context,
	text string,
	opts SendOptions,
	pollInterval time.Duration,
	maxWait time.Duration,
) (*a2a.Task, error) {
	task, err := client.Send(ctx, text, opts)
	if err != nil {
		return nil, err
	}

	return client.WaitFor(ctx, task.ID, pollInterval, maxWait)
}
