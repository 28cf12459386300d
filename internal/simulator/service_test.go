package simulator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/models"
)

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

const aliceReply = `{
	"executiveSummary": "Alice likes the intro APR.",
	"sentimentEvolution": "Started skeptical, warmed up.",
	"verdicts": {"apply": 1, "fence": 0, "reject": 0},
	"featureSentiments": [{"feature": "0% APR", "positive": 1, "negative": 0, "neutral": 0}],
	"personas": [{"name": "Alice", "occupation": "Nurse", "location": "Ohio", "income": "55k", "verdict": "Apply", "reason": "Saves on interest", "quote": "Twelve months is plenty."}],
	"missedOpportunities": ["Cash back on groceries"]
}`

func aliceRequest() models.SimulationRequest {
	return models.SimulationRequest{
		CampaignPitch: "0% APR for 12 months",
		Personas: []models.Persona{{
			Name:           "Alice",
			Age:            34,
			Occupation:     "Nurse",
			Location:       "Ohio",
			Income:         "55k",
			Personality:    "cautious",
			SpendingHabits: "saver",
		}},
	}
}

func TestSimulate_Success(t *testing.T) {
	gen := &fakeGenerator{reply: aliceReply}
	svc := NewService(gen, 10)

	result, err := svc.Simulate(context.Background(), aliceRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, result.Verdicts.Total())
	require.Len(t, result.Personas, 1)
	assert.Equal(t, "Alice", result.Personas[0].Name)
	assert.Equal(t, []string{"Cash back on groceries"}, result.MissedOpportunities)
}

func TestSimulate_NoPersonas(t *testing.T) {
	gen := &fakeGenerator{reply: aliceReply}
	svc := NewService(gen, 10)

	_, err := svc.Simulate(context.Background(), models.SimulationRequest{CampaignPitch: "pitch"})
	assert.ErrorIs(t, err, ErrNoPersonas)
	assert.Zero(t, gen.calls)
}

func TestSimulate_TooManyPersonas(t *testing.T) {
	gen := &fakeGenerator{reply: aliceReply}
	svc := NewService(gen, 1)

	req := aliceRequest()
	req.Personas = append(req.Personas, models.Persona{Name: "Bob"})

	_, err := svc.Simulate(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyPersonas)
	assert.Contains(t, err.Error(), "got 2, limit is 1")
	assert.Zero(t, gen.calls)
}

func TestSimulate_NoLimit(t *testing.T) {
	gen := &fakeGenerator{reply: aliceReply}
	svc := NewService(gen, 0)

	req := aliceRequest()
	for i := 0; i < 100; i++ {
		req.Personas = append(req.Personas, models.Persona{Name: "Extra"})
	}

	_, err := svc.Simulate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
}

func TestSimulate_GeneratorError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&fakeGenerator{err: boom}, 10)

	result, err := svc.Simulate(context.Background(), aliceRequest())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
}

func TestSimulate_InvalidJSON(t *testing.T) {
	svc := NewService(&fakeGenerator{reply: `{"executiveSummary": "cut off`}, 10)

	result, err := svc.Simulate(context.Background(), aliceRequest())
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse model JSON output")
}

func TestSimulate_InconsistentVerdictsStillReturned(t *testing.T) {
	reply := strings.Replace(aliceReply, `"apply": 1`, `"apply": 5`, 1)
	svc := NewService(&fakeGenerator{reply: reply}, 10)

	result, err := svc.Simulate(context.Background(), aliceRequest())
	require.NoError(t, err)
	assert.Equal(t, 5, result.Verdicts.Apply)
}

func TestSimulate_ForwardsPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: aliceReply}
	svc := NewService(gen, 10)

	req := aliceRequest()
	_, err := svc.Simulate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.Equal(t, BuildPrompt(req), gen.prompts[0])
}

func TestParseResult_FillsMissingArrays(t *testing.T) {
	result, err := ParseResult(`{"executiveSummary": "x", "verdicts": {"apply": 0, "fence": 1, "reject": 0}}`)
	require.NoError(t, err)

	assert.NotNil(t, result.FeatureSentiments)
	assert.NotNil(t, result.Personas)
	assert.NotNil(t, result.MissedOpportunities)
}
