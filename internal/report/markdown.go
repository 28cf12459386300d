// Package report renders focus group results as human-readable documents.
package report

import (
	"fmt"
	"strings"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/models"
)

const Title = "Focus Group Insights Report"

// Markdown renders result as a Markdown insights report.
func Markdown(result *models.SimulationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", Title)

	section(&b, "Executive Summary")
	paragraph(&b, result.ExecutiveSummary)

	section(&b, "Evolution of Sentiment")
	paragraph(&b, result.SentimentEvolution)

	section(&b, "Final Verdicts")
	fmt.Fprintf(&b, "- %s: %d\n", models.VerdictApply, result.Verdicts.Apply)
	fmt.Fprintf(&b, "- %s: %d\n", models.VerdictFence, result.Verdicts.Fence)
	fmt.Fprintf(&b, "- %s: %d\n", models.VerdictReject, result.Verdicts.Reject)

	section(&b, "Feature Sentiments")
	if len(result.FeatureSentiments) == 0 {
		b.WriteString("_No feature sentiments recorded._\n")
	}
	for _, fs := range result.FeatureSentiments {
		fmt.Fprintf(&b, "- **%s**: Positive (%d), Neutral (%d), Negative (%d)\n",
			strings.TrimSpace(fs.Feature), fs.Positive, fs.Neutral, fs.Negative)
	}

	section(&b, "Persona Breakdown")
	if len(result.Personas) == 0 {
		b.WriteString("_No persona reactions recorded._\n")
	}
	for i, p := range result.Personas {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### %s - %s\n\n", p.Name, p.Verdict)
		fmt.Fprintf(&b, "**Occupation:** %s | **Location:** %s | **Income:** %s\n\n", p.Occupation, p.Location, p.Income)
		fmt.Fprintf(&b, "**Reason:** %s\n\n", strings.TrimSpace(p.Reason))
		if quote := strings.TrimSpace(p.Quote); quote != "" {
			fmt.Fprintf(&b, "> \"%s\"\n", quote)
		}
	}

	section(&b, "Missed Opportunities")
	if len(result.MissedOpportunities) == 0 {
		b.WriteString("_None identified._\n")
	}
	for _, m := range result.MissedOpportunities {
		fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(m))
	}

	return b.String()
}

func section(b *strings.Builder, heading string) {
	fmt.Fprintf(b, "\n## %s\n\n", heading)
}

func paragraph(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "_Not provided._"
	}
	b.WriteString(text + "\n")
}
