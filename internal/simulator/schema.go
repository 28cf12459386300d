package simulator

import (
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/models"
)

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func integerSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeInteger}
}

// ResponseSchema is the structured-output constraint sent with every
// simulation request. It mirrors models.SimulationResult.
func ResponseSchema() *genai.Schema {
	verdictHint := fmt.Sprintf("Must be '%s', '%s', or '%s'",
		models.VerdictApply, models.VerdictReject, models.VerdictFence)

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"executiveSummary":   stringSchema("A high-level overview of the campaign's reception."),
			"sentimentEvolution": stringSchema("How opinions changed during the debate."),
			"verdicts": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"apply":  integerSchema(),
					"fence":  integerSchema(),
					"reject": integerSchema(),
				},
				Required: []string{"apply", "fence", "reject"},
			},
			"featureSentiments": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"feature":  stringSchema(""),
						"positive": integerSchema(),
						"negative": integerSchema(),
						"neutral":  integerSchema(),
					},
					Required: []string{"feature", "positive", "negative", "neutral"},
				},
			},
			"personas": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":       stringSchema(""),
						"occupation": stringSchema(""),
						"location":   stringSchema(""),
						"income":     stringSchema(""),
						"verdict":    stringSchema(verdictHint),
						"reason":     stringSchema(""),
						"quote":      stringSchema(""),
					},
					Required: []string{"name", "occupation", "location", "income", "verdict", "reason", "quote"},
				},
			},
			"missedOpportunities": {
				Type:  genai.TypeArray,
				Items: stringSchema(""),
			},
		},
		Required: []string{
			"executiveSummary",
			"sentimentEvolution",
			"verdicts",
			"featureSentiments",
			"personas",
			"missedOpportunities",
		},
	}
}
