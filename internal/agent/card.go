// Package agent describes this service to agent-to-agent (A2A) clients.
package agent

import "strings"

const (
	Name         = "Synthetic Focus Group"
	Version      = "1.0.0"
	EndpointPath = "/a2a/focus-group"
	SkillID      = "focus-group-simulation"
)

type Card struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	URL                string       `json:"url"`
	Version            string       `json:"version"`
	Capabilities       Capabilities `json:"capabilities"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Skills             []Skill      `json:"skills"`
}

type Capabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
	InputModes  []string `json:"inputModes"`
	OutputModes []string `json:"outputModes"`
}

// NewCard builds the agent card advertised at baseURL.
func NewCard(baseURL string) Card {
	return Card{
		Name:        Name,
		Description: "Simulates a focus group debate among synthetic customer personas and reports verdicts, feature sentiment and per-persona reactions to a campaign pitch.",
		URL:         strings.TrimRight(baseURL, "/") + EndpointPath,
		Version:     Version,
		Capabilities: Capabilities{
			Streaming:              false,
			PushNotifications:      false,
			StateTransitionHistory: false,
		},
		DefaultInputModes:  []string{"text/plain", "application/json"},
		DefaultOutputModes: []string{"text/markdown", "application/json"},
		Skills: []Skill{
			{
				ID:          SkillID,
				Name:        "Focus Group Simulation",
				Description: "Send a data part {\"campaignPitch\": string, \"personas\": [...]} or a text pitch plus a data part with personas. Returns a Markdown report and the structured result.",
				Tags:        []string{"marketing", "focus-group", "personas", "market-research"},
				Examples: []string{
					"0% APR for 12 months on all purchases, no annual fee.",
				},
				InputModes:  []string{"text/plain", "application/json"},
				OutputModes: []string{"text/markdown", "application/json"},
			},
		},
	}
}
