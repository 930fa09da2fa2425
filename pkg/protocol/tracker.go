package protocol

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/conductor-go/pkg/a2a"
)

/*
Tracker is an in-memory index of every task observed during a run. Entries
are created when a task is first seen, updated in place on every poll and
never removed except by Reset. The single hard invariant is terminal
immutability: once a tracked task reaches a terminal state, later updates
for that id are discarded.
*/
type Tracker struct {
	mu           sync.RWMutex
	tasks        map[string]*a2a.Task
	contextTasks map[string][]string
	active       map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		tasks:        make(map[string]*a2a.Task),
		contextTasks: make(map[string][]string),
		active:       make(map[string]struct{}),
	}
}

/*
Add inserts or updates a task. Updates addressed to a task already in a
terminal state are dropped, keeping the stored record byte-identical for
every later read.
*/
func (tracker *Tracker) Add(task *a2a.Task) {
	if task == nil || task.ID == "" {
		return
	}

	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if existing, ok := tracker.tasks[task.ID]; ok && existing.Status.State.Terminal() {
		log.Warn("ignoring update to terminal task", "task", task.ID, "state", existing.Status.State)
		return
	}

	tracker.tasks[task.ID] = task.Clone()

	if task.ContextID != "" {
		ids := tracker.contextTasks[task.ContextID]
		if !contains(ids, task.ID) {
			tracker.contextTasks[task.ContextID] = append(ids, task.ID)
		}
	}

	if task.Status.State.Terminal() {
		delete(tracker.active, task.ID)
	} else {
		tracker.active[task.ID] = struct{}{}
	}
}

// Get returns a deep copy of the tracked task, or nil when unknown.
func (tracker *Tracker) Get(taskID string) *a2a.Task {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	task, ok := tracker.tasks[taskID]
	if !ok {
		return nil
	}

	return task.Clone()
}

// Active returns every task in a non-terminal state, paused tasks included.
func (tracker *Tracker) Active() []*a2a.Task {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	tasks := make([]*a2a.Task, 0, len(tracker.active))
	for id := range tracker.active {
		if task, ok := tracker.tasks[id]; ok {
			tasks = append(tasks, task.Clone())
		}
	}

	return tasks
}

// Completed returns every task that finished successfully.
func (tracker *Tracker) Completed() []*a2a.Task {
	return tracker.inState(a2a.TaskStateCompleted)
}

// Failed returns every task that ended in failure.
func (tracker *Tracker) Failed() []*a2a.Task {
	return tracker.inState(a2a.TaskStateFailed)
}

func (tracker *Tracker) inState(state a2a.TaskState) []*a2a.Task {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	tasks := make([]*a2a.Task, 0)
	for _, task := range tracker.tasks {
		if task.Status.State == state {
			tasks = append(tasks, task.Clone())
		}
	}

	return tasks
}

// Context returns the tasks of one context in the order they were first
// observed.
func (tracker *Tracker) Context(contextID string) []*a2a.Task {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	ids := tracker.contextTasks[contextID]
	tasks := make([]*a2a.Task, 0, len(ids))

	for _, id := range ids {
		if task, ok := tracker.tasks[id]; ok {
			tasks = append(tasks, task.Clone())
		}
	}

	return tasks
}

// List returns all tracked tasks, optionally filtered by context.
func (tracker *Tracker) List(contextID string) []*a2a.Task {
	if contextID != "" {
		return tracker.Context(contextID)
	}

	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	tasks := make([]*a2a.Task, 0, len(tracker.tasks))
	for _, task := range tracker.tasks {
		tasks = append(tasks, task.Clone())
	}

	return tasks
}

// ContextDone reports whether every task of a context reached a terminal
// state. An empty context is not done.
func (tracker *Tracker) ContextDone(contextID string) bool {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	ids := tracker.contextTasks[contextID]
	if len(ids) == 0 {
		return false
	}

	for _, id := range ids {
		task, ok := tracker.tasks[id]
		if !ok || !task.Status.State.Terminal() {
			return false
		}
	}

	return true
}

// ContextSummary counts the tasks of a context per state.
func (tracker *Tracker) ContextSummary(contextID string) map[a2a.TaskState]int {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	summary := make(map[a2a.TaskState]int)
	for _, id := range tracker.contextTasks[contextID] {
		if task, ok := tracker.tasks[id]; ok {
			summary[task.Status.State]++
		}
	}

	return summary
}

// Len returns the number of tracked tasks.
func (tracker *Tracker) Len() int {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()

	return len(tracker.tasks)
}

// Reset discards all tracked state.
func (tracker *Tracker) Reset() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.tasks = make(map[string]*a2a.Task)
	tracker.contextTasks = make(map[string][]string)
	tracker.active = make(map[string]struct{})

	log.Debug("task tracker reset")
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
