package conductor

import (
	"strings"

	"github.com/theapemachine/conductor-go/pkg/actions"
)

/*
Turn is one completed cycle of directive generation and action execution.
Turns are never mutated after being appended to the history; together the
history is the single source of truth for what happened during a run.
*/
type Turn struct {
	Directive    string                          `json:"directive"`
	Actions      []actions.Action                `json:"-"`
	Responses    []string                        `json:"responses"`
	Trajectories map[string][]actions.Trajectory `json:"trajectories,omitempty"`
}

// Prompt renders the turn for inclusion in the next directive request,
// truncating long directives so the history stays readable.
func (turn *Turn) Prompt() string {
	var sb strings.Builder

	directive := turn.Directive
	if len(directive) > 500 {
		directive = directive[:500] + "..."
	}
	sb.WriteString("Conductor: " + directive)

	for _, response := range turn.Responses {
		sb.WriteString("\nEnv: " + response)
	}

	return sb.String()
}
