package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uam-aleman/wochenkontext/internal/ai"
)

// ErrEmptyFeedback is returned when a provider answers with no content.
var ErrEmptyFeedback = errors.New("empty feedback")

// Feedback is the generated review of one submission.
type Feedback struct {
	Content  string `json:"content"`
	Model    string `json:"model,omitempty"`
	Provider string `json:"provider,omitempty"`
	// Tokens spent generating this feedback; zero when served from cache.
	Tokens   int    `json:"tokens,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
}

// FeedbackGenerator produces feedback for a payload.
type FeedbackGenerator interface {
	Generate(ctx context.Context, p InstructionPayload) (Feedback, error)
}

// DefaultTemperature favours stable corrections over creative ones.
const DefaultTemperature = 0.6

// AIGenerator generates feedback through an AI completer.
type AIGenerator struct {
	completer   ai.Completer
	model       string
	temperature float64
	maxTokens   int
}

// GeneratorOption configures an AIGenerator.
type GeneratorOption func(*AIGenerator)

// WithModel overrides the provider's default model.
func WithModel(model string) GeneratorOption {
	return func(g *AIGenerator) { g.model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) GeneratorOption {
	return func(g *AIGenerator) {
		if t > 0 {
			g.temperature = t
		}
	}
}

// WithMaxTokens caps the length of the generated feedback.
func WithMaxTokens(n int) GeneratorOption {
	return func(g *AIGenerator) { g.maxTokens = n }
}

// NewAIGenerator creates a generator backed by c, usually an *ai.Router.
func NewAIGenerator(c ai.Completer, opts ...GeneratorOption) *AIGenerator {
	g := &AIGenerator{
		completer:   c,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *AIGenerator) Generate(ctx context.Context, p InstructionPayload) (Feedback, error) {
	system, user, err := Prompt(p)
	if err != nil {
		return Feedback{}, err
	}

	resp, err := g.completer.Complete(ctx, ai.CompletionRequest{
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: system},
			{Role: ai.RoleUser, Content: user},
		},
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return Feedback{}, fmt.Errorf("generating feedback: %w", err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return Feedback{}, fmt.Errorf("generating feedback: %w", ErrEmptyFeedback)
	}

	return Feedback{
		Content:  resp.Content,
		Model:    resp.Model,
		Provider: resp.Provider,
		Tokens:   resp.TotalTokens(),
	}, nil
}

// PendingGenerator acknowledges a submission without reviewing it. It stands
// in when no AI provider is configured.
type PendingGenerator struct{}

func (PendingGenerator) Generate(_ context.Context, p InstructionPayload) (Feedback, error) {
	return Feedback{
		Content: fmt.Sprintf("Feedback preliminar para %s: Buen trabajo con el texto. (IA pendiente de conexión final)", p.StudentName),
		Model:   "pending",
	}, nil
}
