package actions

import "fmt"

// Kind identifies one of the closed set of action variants.
type Kind string

const (
	KindQueryAgent       Kind = "query_agent"
	KindUpdateScratchpad Kind = "update_scratchpad"
	KindUpdateTodo       Kind = "update_todo"
	KindFinishStage      Kind = "finish_stage"
)

// Known reports whether the tag names a recognized action kind.
func (kind Kind) Known() bool {
	switch kind {
	case KindQueryAgent, KindUpdateScratchpad, KindUpdateTodo, KindFinishStage:
		return true
	}
	return false
}

/*
Action is the closed tagged union of directives the parser can produce.
Actions are immutable value objects, created by the parser and consumed
exactly once by the handler.
*/
type Action interface {
	Kind() Kind
	fmt.Stringer
}

// QueryAgent asks a remote agent to perform work and waits for the result.
type QueryAgent struct {
	AgentID   string
	Query     string
	ContextID string
}

func (QueryAgent) Kind() Kind { return KindQueryAgent }

func (a QueryAgent) String() string {
	return fmt.Sprintf("QueryAgent(%s, query=%q)", a.AgentID, preview(a.Query, 50))
}

// ScratchpadOp enumerates the scratchpad mutations.
type ScratchpadOp string

const (
	ScratchpadAppend  ScratchpadOp = "append"
	ScratchpadReplace ScratchpadOp = "replace"
	ScratchpadClear   ScratchpadOp = "clear"
)

// UpdateScratchpad mutates the run's scratchpad.
type UpdateScratchpad struct {
	Content   string
	Operation ScratchpadOp
}

func (UpdateScratchpad) Kind() Kind { return KindUpdateScratchpad }

func (a UpdateScratchpad) String() string {
	return fmt.Sprintf("UpdateScratchpad(%s)", a.Operation)
}

// TodoOp enumerates the todo list mutations.
type TodoOp string

const (
	TodoAdd      TodoOp = "add"
	TodoComplete TodoOp = "complete"
	TodoRemove   TodoOp = "remove"
)

// UpdateTodo mutates the run's todo list. Index is required for complete
// and remove.
type UpdateTodo struct {
	Item      string
	Operation TodoOp
	Index     *int
}

func (UpdateTodo) Kind() Kind { return KindUpdateTodo }

func (a UpdateTodo) String() string {
	return fmt.Sprintf("UpdateTodo(%s, item=%q)", a.Operation, preview(a.Item, 30))
}

// FinishStage declares the current stage complete.
type FinishStage struct {
	Message string
	Summary string
}

func (FinishStage) Kind() Kind { return KindFinishStage }

func (a FinishStage) String() string {
	return fmt.Sprintf("FinishStage(message=%q)", preview(a.Message, 50))
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
