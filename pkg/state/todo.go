package state

import (
	"fmt"
	"strings"
	"sync"
)

// TodoItem is a single tracked piece of work.
type TodoItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func (item TodoItem) String() string {
	marker := "[ ]"
	if item.Completed {
		marker = "[x]"
	}
	return marker + " " + item.Text
}

/*
Todo tracks the open questions and remaining work of a run. Like the
scratchpad it is scoped to one run.
*/
type Todo struct {
	mu       sync.RWMutex
	items    []TodoItem
	maxItems int
	cached   *string
}

func NewTodo() *Todo {
	return &Todo{
		maxItems: 100,
	}
}

// Add appends a pending item. Blank items are rejected.
func (todo *Todo) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	todo.mu.Lock()
	defer todo.mu.Unlock()

	todo.items = append(todo.items, TodoItem{Text: text})

	if len(todo.items) > todo.maxItems {
		todo.prune()
	}

	todo.cached = nil
	return true
}

// prune removes completed items first, then the oldest items, until the
// list fits the limit again. Caller must hold the lock.
func (todo *Todo) prune() {
	kept := todo.items[:0]
	for _, item := range todo.items {
		if !item.Completed {
			kept = append(kept, item)
		}
	}
	todo.items = kept

	if len(todo.items) > todo.maxItems {
		todo.items = todo.items[len(todo.items)-todo.maxItems:]
	}
}

// Complete marks the item at index as done. Returns false when the index is
// out of bounds; the list is left unchanged.
func (todo *Todo) Complete(index int) bool {
	todo.mu.Lock()
	defer todo.mu.Unlock()

	if index < 0 || index >= len(todo.items) {
		return false
	}

	todo.items[index].Completed = true
	todo.cached = nil
	return true
}

// Remove deletes the item at index. Returns false when the index is out of
// bounds.
func (todo *Todo) Remove(index int) bool {
	todo.mu.Lock()
	defer todo.mu.Unlock()

	if index < 0 || index >= len(todo.items) {
		return false
	}

	todo.items = append(todo.items[:index], todo.items[index+1:]...)
	todo.cached = nil
	return true
}

// ClearCompleted removes every completed item and reports how many were
// dropped.
func (todo *Todo) ClearCompleted() int {
	todo.mu.Lock()
	defer todo.mu.Unlock()

	before := len(todo.items)
	kept := todo.items[:0]
	for _, item := range todo.items {
		if !item.Completed {
			kept = append(kept, item)
		}
	}
	todo.items = kept

	if removed := before - len(todo.items); removed > 0 {
		todo.cached = nil
		return removed
	}
	return 0
}

// Items returns a copy of the list.
func (todo *Todo) Items() []TodoItem {
	todo.mu.RLock()
	defer todo.mu.RUnlock()

	items := make([]TodoItem, len(todo.items))
	copy(items, todo.items)
	return items
}

// Len returns the total number of items.
func (todo *Todo) Len() int {
	todo.mu.RLock()
	defer todo.mu.RUnlock()

	return len(todo.items)
}

// Pending returns the number of items not yet completed.
func (todo *Todo) Pending() int {
	todo.mu.RLock()
	defer todo.mu.RUnlock()

	pending := 0
	for _, item := range todo.items {
		if !item.Completed {
			pending++
		}
	}
	return pending
}

// Status renders the numbered list with completion markers.
func (todo *Todo) Status() string {
	todo.mu.Lock()
	defer todo.mu.Unlock()

	if len(todo.items) == 0 {
		return "(no items)"
	}

	if todo.cached != nil {
		return *todo.cached
	}

	lines := make([]string, 0, len(todo.items))
	for i, item := range todo.items {
		lines = append(lines, fmt.Sprintf("%d. %s", i, item))
	}

	status := strings.Join(lines, "\n")
	todo.cached = &status
	return status
}

// Prompt formats the todo list for inclusion in a directive prompt.
func (todo *Todo) Prompt() string {
	return fmt.Sprintf("## Todo List (%d/%d pending)\n%s", todo.Pending(), todo.Len(), todo.Status())
}
