package simulator

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}

func TestResponseText_NoCandidates(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = responseText(nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestResponseText_Empty(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []genai.Part{genai.Text("   ")}},
			FinishReason: genai.FinishReasonSafety,
		}},
	}
	_, err := responseText(resp)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestResponseSchema(t *testing.T) {
	s := ResponseSchema()

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{
		"executiveSummary", "sentimentEvolution", "verdicts",
		"featureSentiments", "personas", "missedOpportunities",
	}, s.Required)
	for _, name := range s.Required {
		assert.Contains(t, s.Properties, name)
	}

	verdicts := s.Properties["verdicts"]
	assert.Equal(t, genai.TypeObject, verdicts.Type)
	assert.ElementsMatch(t, []string{"apply", "fence", "reject"}, verdicts.Required)
	assert.Equal(t, genai.TypeInteger, verdicts.Properties["apply"].Type)

	features := s.Properties["featureSentiments"]
	assert.Equal(t, genai.TypeArray, features.Type)
	require.NotNil(t, features.Items)
	assert.ElementsMatch(t, []string{"feature", "positive", "negative", "neutral"}, features.Items.Required)

	personas := s.Properties["personas"]
	require.NotNil(t, personas.Items)
	assert.Len(t, personas.Items.Required, 7)
	assert.Contains(t, personas.Items.Properties["verdict"].Description, "On the Fence")

	missed := s.Properties["missedOpportunities"]
	assert.Equal(t, genai.TypeArray, missed.Type)
	assert.Equal(t, genai.TypeString, missed.Items.Type)
}

func TestConfigureModel_Temperature(t *testing.T) {
	zero := float32(0)

	greedy := &genai.GenerativeModel{}
	configureModel(greedy, GeminiConfig{Temperature: &zero})
	require.NotNil(t, greedy.Temperature)
	assert.Equal(t, float32(0), *greedy.Temperature)

	unset := &genai.GenerativeModel{}
	configureModel(unset, GeminiConfig{})
	assert.Nil(t, unset.Temperature)
}

func TestConfigureModel_StructuredOutput(t *testing.T) {
	model := &genai.GenerativeModel{}
	configureModel(model, GeminiConfig{})

	assert.Equal(t, "application/json", model.ResponseMIMEType)
	require.NotNil(t, model.ResponseSchema)
	assert.Equal(t, genai.TypeObject, model.ResponseSchema.Type)
}
