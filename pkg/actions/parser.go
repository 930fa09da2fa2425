package actions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cohesivestack/valgo"
)

/*
Parser extracts typed actions from raw directive text. The text is an
untrusted, partially structured stream: free-form narration interleaved with
tagged blocks of the form

	<action type="KIND"> <field>value</field> ... </action>

Only recognized blocks are extracted; everything else is ignored. A
malformed block is recorded as a parse error and never aborts the rest of
the directive. The parser produces validated data only - it executes
nothing.
*/
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var actionPattern = regexp.MustCompile(`(?s)<action\s+type="([^"]+)"\s*>(.*?)</action>`)

var fieldPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, tag := range []string{
		"agent_id", "query", "context_id",
		"content", "operation",
		"item", "index",
		"message", "summary",
	} {
		fieldPatterns[tag] = regexp.MustCompile(fmt.Sprintf(`(?s)<%s>(.*?)</%s>`, tag, tag))
	}
}

/*
Parse returns the actions found in the directive, the per-block parse
errors, and whether at least one block matched a known action tag. The
returned action order matches textual order of appearance; the caller
executes them in exactly this order.
*/
func (parser *Parser) Parse(directive string) (actions []Action, errs []string, foundAttempt bool) {
	for _, match := range actionPattern.FindAllStringSubmatch(directive, -1) {
		kind := Kind(match[1])
		body := match[2]

		if !kind.Known() {
			// Forward compatible: unknown kinds are non-semantic narration.
			log.Debug("ignoring unknown action kind", "kind", kind)
			continue
		}

		foundAttempt = true

		action, err := parser.parseBlock(kind, body)
		if err != nil {
			errs = append(errs, fmt.Sprintf("failed to parse %s action: %s", kind, err))
			continue
		}

		actions = append(actions, action)
	}

	return actions, errs, foundAttempt
}

func (parser *Parser) parseBlock(kind Kind, body string) (Action, error) {
	switch kind {
	case KindQueryAgent:
		agentID := field(body, "agent_id")
		query := field(body, "query")

		if val := valgo.Is(
			valgo.String(agentID, "agent_id").Not().Blank(),
		).Is(
			valgo.String(query, "query").Not().Blank(),
		); !val.Valid() {
			return nil, val.Error()
		}

		return QueryAgent{
			AgentID:   agentID,
			Query:     query,
			ContextID: field(body, "context_id"),
		}, nil

	case KindUpdateScratchpad:
		op := ScratchpadOp(fieldDefault(body, "operation", string(ScratchpadAppend)))

		switch op {
		case ScratchpadAppend, ScratchpadReplace:
			content := field(body, "content")
			if val := valgo.Is(valgo.String(content, "content").Not().Blank()); !val.Valid() {
				return nil, val.Error()
			}
			return UpdateScratchpad{Content: content, Operation: op}, nil
		case ScratchpadClear:
			return UpdateScratchpad{Operation: op}, nil
		default:
			return nil, fmt.Errorf("unknown scratchpad operation: %s", op)
		}

	case KindUpdateTodo:
		item := field(body, "item")
		op := TodoOp(fieldDefault(body, "operation", string(TodoAdd)))

		if val := valgo.Is(valgo.String(item, "item").Not().Blank()); !val.Valid() {
			return nil, val.Error()
		}

		switch op {
		case TodoAdd:
			return UpdateTodo{Item: item, Operation: op}, nil
		case TodoComplete, TodoRemove:
			raw := field(body, "index")
			if raw == "" {
				return nil, fmt.Errorf("%s operation requires index", op)
			}
			index, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid index %q: %w", raw, err)
			}
			return UpdateTodo{Item: item, Operation: op, Index: &index}, nil
		default:
			return nil, fmt.Errorf("unknown todo operation: %s", op)
		}

	case KindFinishStage:
		message := field(body, "message")
		summary := field(body, "summary")

		if val := valgo.Is(
			valgo.String(message, "message").Not().Blank(),
		).Is(
			valgo.String(summary, "summary").Not().Blank(),
		); !val.Valid() {
			return nil, val.Error()
		}

		return FinishStage{Message: message, Summary: summary}, nil
	}

	return nil, fmt.Errorf("unknown action kind: %s", kind)
}

func field(body string, tag string) string {
	pattern, ok := fieldPatterns[tag]
	if !ok {
		return ""
	}

	match := pattern.FindStringSubmatch(body)
	if match == nil {
		return ""
	}

	return strings.TrimSpace(match[1])
}

func fieldDefault(body string, tag string, fallback string) string {
	if value := field(body, tag); value != "" {
		return value
	}
	return fallback
}
