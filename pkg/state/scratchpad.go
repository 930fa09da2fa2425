package state

import (
	"strings"
	"sync"
)

/*
Scratchpad is the working memory of a run: an ordered sequence of text
entries that together form one logical document. It is scoped to a single
run and discarded when the run ends.
*/
type Scratchpad struct {
	mu       sync.RWMutex
	entries  []string
	maxItems int
	cached   *string
}

func NewScratchpad() *Scratchpad {
	return &Scratchpad{
		maxItems: 50,
	}
}

// Append adds an entry. Blank entries are skipped. When the entry limit is
// exceeded the oldest entries are dropped.
func (pad *Scratchpad) Append(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	pad.mu.Lock()
	defer pad.mu.Unlock()

	pad.entries = append(pad.entries, text)

	if len(pad.entries) > pad.maxItems {
		pad.entries = pad.entries[len(pad.entries)-pad.maxItems:]
	}

	pad.cached = nil
}

// Replace discards all entries and stores the given text as the only one.
func (pad *Scratchpad) Replace(text string) {
	pad.mu.Lock()
	defer pad.mu.Unlock()

	pad.entries = pad.entries[:0]
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		pad.entries = append(pad.entries, trimmed)
	}
	pad.cached = nil
}

// Clear discards all entries.
func (pad *Scratchpad) Clear() {
	pad.mu.Lock()
	defer pad.mu.Unlock()

	pad.entries = pad.entries[:0]
	pad.cached = nil
}

// Empty reports whether the scratchpad holds no entries.
func (pad *Scratchpad) Empty() bool {
	pad.mu.RLock()
	defer pad.mu.RUnlock()

	return len(pad.entries) == 0
}

// Len returns the number of entries.
func (pad *Scratchpad) Len() int {
	pad.mu.RLock()
	defer pad.mu.RUnlock()

	return len(pad.entries)
}

// Content renders the entries as one document, newline separated.
func (pad *Scratchpad) Content() string {
	pad.mu.Lock()
	defer pad.mu.Unlock()

	if len(pad.entries) == 0 {
		return ""
	}

	if pad.cached != nil {
		return *pad.cached
	}

	content := strings.Join(pad.entries, "\n")
	pad.cached = &content
	return content
}

// Prompt formats the scratchpad for inclusion in a directive prompt.
func (pad *Scratchpad) Prompt() string {
	content := pad.Content()
	if content == "" {
		content = "(empty)"
	}

	return "## Scratchpad\n" + content
}
