package a2a

import "time"

/*
TaskState enumerates the mutually-exclusive states a task may be in. The
zero value is "unknown".
*/
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateInputReq  TaskState = "input-required"
	TaskStateAuthReq   TaskState = "auth-required"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
	TaskStateCanceled  TaskState = "canceled"
	TaskStateRejected  TaskState = "rejected"
	TaskStateUnknown   TaskState = "unknown"
)

// Terminal reports whether the state ends a task lifecycle. A task in a
// terminal state never changes again.
func (state TaskState) Terminal() bool {
	switch state {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled, TaskStateRejected:
		return true
	}
	return false
}

// Paused reports whether the task is waiting on the caller. Paused tasks
// still count as active and can be resumed by sending a follow-up message
// addressed to the same task id.
func (state TaskState) Paused() bool {
	return state == TaskStateInputReq || state == TaskStateAuthReq
}

// Active reports whether the task still occupies the remote agent.
func (state TaskState) Active() bool {
	return !state.Terminal()
}

type TaskStatus struct {
	State     TaskState `json:"state"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
