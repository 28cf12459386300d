package simulator

import (
	"fmt"
	"strings"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/models"
)

// formatPersonas renders the 1-indexed persona listing embedded in the prompt.
func formatPersonas(personas []models.Persona) string {
	lines := make([]string, 0, len(personas))
	for i, p := range personas {
		lines = append(lines, fmt.Sprintf("%d. %s (Age: %d, Job: %s, Loc: %s, Income: %s, Personality: %s, Spending: %s)",
			i+1, p.Name, p.Age, p.Occupation, p.Location, p.Income, p.Personality, p.SpendingHabits))
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt renders the focus group prompt. The output is deterministic for
// a given request.
func BuildPrompt(req models.SimulationRequest) string {
	n := len(req.Personas)
	return fmt.Sprintf(`You are an expert market researcher and data extractor.
I am running a synthetic focus group with %d personas testing a new campaign.

The Personas:
%s

The Campaign Pitch:
%s

Simulate a deep, multi-turn debate among these %d personas about this exact campaign.
Then, extract the final insights and return them strictly in the requested JSON format.

Ensure the data reflects realistic demographic reactions based on the persona definitions provided.
Each persona's final verdict must be one of "%s", "%s" or "%s", and the verdict counts must add up to %d.`,
		n, formatPersonas(req.Personas), req.CampaignPitch, n,
		models.VerdictApply, models.VerdictFence, models.VerdictReject, n)
}
