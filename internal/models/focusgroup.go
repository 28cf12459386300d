package models

import "encoding/json"

type Persona struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Occupation     string `json:"occupation"`
	Location       string `json:"location"`
	Income         string `json:"income"`
	Personality    string `json:"personality"`
	SpendingHabits string `json:"spendingHabits"`
}

// UnmarshalJSON also accepts the snake_case "spending_habits" key sent by
// older front-ends. "spendingHabits" wins when both are present.
func (p *Persona) UnmarshalJSON(data []byte) error {
	type plain Persona
	var aux struct {
		plain
		SpendingHabitsSnake *string `json:"spending_habits"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = Persona(aux.plain)
	if p.SpendingHabits == "" && aux.SpendingHabitsSnake != nil {
		p.SpendingHabits = *aux.SpendingHabitsSnake
	}
	return nil
}

type SimulationRequest struct {
	CampaignPitch string    `json:"campaignPitch" binding:"required"`
	Personas      []Persona `json:"personas" binding:"required"`
}

type Verdicts struct {
	Apply  int `json:"apply"`
	Fence  int `json:"fence"`
	Reject int `json:"reject"`
}

// Total is the number of personas the model counted across all verdicts.
func (v Verdicts) Total() int {
	return v.Apply + v.Fence + v.Reject
}

type FeatureSentiment struct {
	Feature  string `json:"feature"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

type PersonaReaction struct {
	Name       string `json:"name"`
	Occupation string `json:"occupation"`
	Location   string `json:"location"`
	Income     string `json:"income"`
	Verdict    string `json:"verdict"`
	Reason     string `json:"reason"`
	Quote      string `json:"quote"`
}

// Verdict labels the model is asked to use for PersonaReaction.Verdict.
const (
	VerdictApply  = "Apply"
	VerdictFence  = "On the Fence"
	VerdictReject = "Hard No"
)

type SimulationResult struct {
	ExecutiveSummary    string             `json:"executiveSummary"`
	SentimentEvolution  string             `json:"sentimentEvolution"`
	Verdicts            Verdicts           `json:"verdicts"`
	FeatureSentiments   []FeatureSentiment `json:"featureSentiments"`
	Personas            []PersonaReaction  `json:"personas"`
	MissedOpportunities []string           `json:"missedOpportunities"`
}

// Normalize replaces nil sequences with empty ones so the result always
// encodes arrays rather than null.
func (r *SimulationResult) Normalize() {
	if r.FeatureSentiments == nil {
		r.FeatureSentiments = []FeatureSentiment{}
	}
	if r.Personas == nil {
		r.Personas = []PersonaReaction{}
	}
	if r.MissedOpportunities == nil {
		r.MissedOpportunities = []string{}
	}
}
