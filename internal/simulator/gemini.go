package simulator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.5-flash"

var (
	ErrNoCandidates  = errors.New("no candidates returned by model")
	ErrEmptyResponse = errors.New("empty response from model")
)

type GeminiConfig struct {
	APIKey string
	Model  string
	// Temperature is left to the provider default when nil.
	Temperature *float32
}

// GeminiClient generates focus group reports with structured JSON output.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = DefaultModel
	}

	model := client.GenerativeModel(name)
	configureModel(model, cfg)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// configureModel applies sampling settings and the structured-output schema.
func configureModel(model *genai.GenerativeModel, cfg GeminiConfig) {
	if cfg.Temperature != nil {
		model.SetTemperature(*cfg.Temperature)
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = ResponseSchema()
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// GenerateJSON sends prompt to the model and returns the JSON text of the
// first candidate.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("%w (finish reason: %s)", ErrEmptyResponse, cand.FinishReason)
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w (finish reason: %s)", ErrEmptyResponse, cand.FinishReason)
	}
	return text, nil
}
