package simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/comenerv/Synthetic-Focus-Group-App/internal/models"
)

var (
	ErrNoPersonas      = errors.New("personas must not be empty")
	ErrTooManyPersonas = errors.New("too many personas")
)

// Generator produces JSON text for a prompt. GeminiClient is the production
// implementation.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	gen         Generator
	maxPersonas int
}

// NewService returns a Service backed by gen. maxPersonas <= 0 disables the
// upper bound on the persona list.
func NewService(gen Generator, maxPersonas int) *Service {
	return &Service{
		gen:         gen,
		maxPersonas: maxPersonas,
	}
}

// Simulate runs one focus group round trip against the model. The parsed
// reply is returned as-is; verdict counts are only checked for logging.
func (s *Service) Simulate(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error) {
	if len(req.Personas) == 0 {
		return nil, ErrNoPersonas
	}
	if s.maxPersonas > 0 && len(req.Personas) > s.maxPersonas {
		return nil, fmt.Errorf("%w: got %d, limit is %d", ErrTooManyPersonas, len(req.Personas), s.maxPersonas)
	}

	prompt := BuildPrompt(req)

	log.Printf("STATE: Simulating focus group with %d persona(s)", len(req.Personas))
	text, err := s.gen.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := ParseResult(text)
	if err != nil {
		return nil, err
	}

	if total := result.Verdicts.Total(); total != len(req.Personas) {
		log.Printf("WARN: Verdict counts add up to %d but %d persona(s) were submitted", total, len(req.Personas))
	}

	return result, nil
}

// ParseResult decodes the model's JSON reply.
func ParseResult(text string) (*models.SimulationResult, error) {
	var result models.SimulationResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON output: %w", err)
	}
	result.Normalize()
	return &result, nil
}
