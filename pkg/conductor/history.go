package conductor

import (
	"fmt"
	"strings"
	"sync"
)

/*
History is the append-only record of turns, read by the prompt builder on
every iteration. A bounded ring keeps memory use flat on long runs; the
oldest turns fall off first.
*/
type History struct {
	mu       sync.RWMutex
	turns    []*Turn
	maxTurns int
	cached   *string
}

func NewHistory(maxTurns int) *History {
	if maxTurns <= 0 {
		maxTurns = 100
	}

	return &History{
		maxTurns: maxTurns,
	}
}

// Append adds a turn. Turns are never modified once appended.
func (history *History) Append(turn *Turn) {
	history.mu.Lock()
	defer history.mu.Unlock()

	history.turns = append(history.turns, turn)
	if len(history.turns) > history.maxTurns {
		history.turns = history.turns[len(history.turns)-history.maxTurns:]
	}

	history.cached = nil
}

// Len returns the number of retained turns.
func (history *History) Len() int {
	history.mu.RLock()
	defer history.mu.RUnlock()

	return len(history.turns)
}

// Turns returns the retained turns in chronological order.
func (history *History) Turns() []*Turn {
	history.mu.RLock()
	defer history.mu.RUnlock()

	turns := make([]*Turn, len(history.turns))
	copy(turns, history.turns)
	return turns
}

// Prompt renders the history for a directive request. When recent is
// positive only the most recent N turns are included.
func (history *History) Prompt(recent int) string {
	history.mu.Lock()
	defer history.mu.Unlock()

	if len(history.turns) == 0 {
		return "No previous interactions."
	}

	if recent <= 0 && history.cached != nil {
		return *history.cached
	}

	turns := history.turns
	if recent > 0 && len(turns) > recent {
		turns = turns[len(turns)-recent:]
	}

	rendered := make([]string, 0, len(turns))
	for i, turn := range turns {
		rendered = append(rendered, fmt.Sprintf("--- Turn %d ---\n%s", i+1, turn.Prompt()))
	}

	result := strings.Join(rendered, "\n\n")

	if recent <= 0 {
		history.cached = &result
	}

	return result
}
