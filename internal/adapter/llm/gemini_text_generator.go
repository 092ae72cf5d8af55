package llm

import (
	"context"
	"fmt"
	"time"

	"quizoraa/internal/domain"
	"quizoraa/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// GeminiTextGenerator implements domain.TextGenerator over a langchaingo model.
type GeminiTextGenerator struct {
	model   llms.Model
	timeout time.Duration
}

// NewGeminiTextGenerator creates a new text generator. The timeout bounds each
// generation call; a zero timeout disables the deadline.
func NewGeminiTextGenerator(model llms.Model, timeout time.Duration) (domain.TextGenerator, error) {
	if model == nil {
		return nil, fmt.Errorf("llm model cannot be nil")
	}
	return &GeminiTextGenerator{
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate implements domain.TextGenerator. Exactly one model call is made;
// there is no retry on failure.
func (g *GeminiTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(0.2))
	if err != nil {
		if err == context.DeadlineExceeded {
			l.Error("LLM request timed out", zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	return response, nil
}
