package protocol

import (
	"fmt"
	"time"

	"github.com/theapemachine/conductor-go/pkg/a2a"
)

// TimeoutError is returned by WaitFor when a task fails to reach a terminal
// state within the deadline. It carries the last observed non-terminal task
// so callers can inspect or resume it.
type TimeoutError struct {
	TaskID   string
	Waited   time.Duration
	LastTask *a2a.Task
}

func (e *TimeoutError) Error() string {
	state := a2a.TaskStateUnknown
	if e.LastTask != nil {
		state = e.LastTask.Status.State
	}
	return fmt.Sprintf("task %s did not reach a terminal state within %s (last state: %s)", e.TaskID, e.Waited, state)
}
