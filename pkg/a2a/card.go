package a2a

/*
AgentCard conveys the top-level capabilities and metadata exposed by a
remote agent. The conductor treats it as an opaque capability lookup keyed
by an operator-assigned alias.
*/
type AgentCard struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	URL          string            `json:"url"`
	Version      string            `json:"version,omitempty"`
	Capabilities AgentCapabilities `json:"capabilities"`
	Skills       []AgentSkill      `json:"skills"`
	AgentTrust   *string           `json:"agentTrust,omitempty"`
}

type AgentCapabilities struct {
	Streaming              bool `json:"streaming,omitempty"`
	PushNotifications      bool `json:"pushNotifications,omitempty"`
	StateTransitionHistory bool `json:"stateTransitionHistory,omitempty"`
}

type AgentSkill struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (card *AgentCard) SkillNames() []string {
	names := make([]string, 0, len(card.Skills))

	for _, skill := range card.Skills {
		names = append(names, skill.Name)
	}

	return names
}
