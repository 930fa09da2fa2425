package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/conductor-go/pkg/a2a"
)

/*
Registry holds the agents discovered for a run, keyed by their operator
assigned alias, with a secondary index from skill name to agent ids.
*/
type Registry struct {
	mu         sync.RWMutex
	agents     map[string]a2a.AgentCard
	order      []string
	skillIndex map[string][]string
	client     *Client
}

func NewRegistry() *Registry {
	return &Registry{
		agents:     make(map[string]a2a.AgentCard),
		skillIndex: make(map[string][]string),
		client:     NewClient(),
	}
}

/*
Discover fetches the descriptor for every URL and registers the agents it
finds. A failing endpoint is logged and skipped; discovery continues with
the remaining URLs.
*/
func (registry *Registry) Discover(ctx context.Context, urls []string) {
	for _, url := range urls {
		card, err := registry.client.FetchCard(ctx, url)
		if err != nil {
			log.Error("failed to discover agent", "url", url, "error", err)
			continue
		}

		registry.Add(*card)
		log.Info("discovered agent", "id", card.ID, "name", card.Name, "skills", len(card.Skills))
	}
}

func (registry *Registry) Add(card a2a.AgentCard) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.agents[card.ID]; !ok {
		registry.order = append(registry.order, card.ID)
	}
	registry.agents[card.ID] = card

	for _, skill := range card.Skills {
		ids := registry.skillIndex[skill.Name]
		if !containsID(ids, card.ID) {
			registry.skillIndex[skill.Name] = append(ids, card.ID)
		}
	}
}

// Get returns the agent registered under the given id.
func (registry *Registry) Get(agentID string) (a2a.AgentCard, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	card, ok := registry.agents[agentID]
	return card, ok
}

// Lookup is Get with a typed error for callers that report failures.
func (registry *Registry) Lookup(agentID string) (a2a.AgentCard, error) {
	card, ok := registry.Get(agentID)
	if !ok {
		return a2a.AgentCard{}, &NotFoundError{AgentID: agentID}
	}
	return card, nil
}

// BySkill returns every agent advertising the given skill.
func (registry *Registry) BySkill(skillName string) []a2a.AgentCard {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	cards := make([]a2a.AgentCard, 0)
	for _, id := range registry.skillIndex[skillName] {
		if card, ok := registry.agents[id]; ok {
			cards = append(cards, card)
		}
	}

	return cards
}

// All returns the registered agents in discovery order.
func (registry *Registry) All() []a2a.AgentCard {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	cards := make([]a2a.AgentCard, 0, len(registry.order))
	for _, id := range registry.order {
		cards = append(cards, registry.agents[id])
	}

	return cards
}

// Len returns the number of registered agents.
func (registry *Registry) Len() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	return len(registry.agents)
}

// String renders the roster the way it is injected into directive prompts.
func (registry *Registry) String() string {
	cards := registry.All()

	if len(cards) == 0 {
		return "(no agents available)"
	}

	var sb strings.Builder

	for _, card := range cards {
		sb.WriteString("### " + card.Name + " (`" + card.ID + "`)\n")
		if card.Description != nil {
			sb.WriteString("Description: " + *card.Description + "\n")
		}
		if len(card.Skills) > 0 {
			sb.WriteString("Skills:\n")
			for _, skill := range card.Skills {
				sb.WriteString("- " + skill.Name)
				if skill.Description != "" {
					sb.WriteString(": " + skill.Description)
				}
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
