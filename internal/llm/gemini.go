package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// GenkitGenerator - провайдер для Gemini и OpenAI-совместимых API через Genkit
type GenkitGenerator struct {
	genkitApp *genkit.Genkit
	provider  string
	model     string
	modelName string
}

// NewGenkitGenerator создаёт генератор поверх уже инициализированного Genkit
func NewGenkitGenerator(genkitApp *genkit.Genkit, provider, model string) (*GenkitGenerator, error) {
	if genkitApp == nil {
		return nil, &ConfigError{Msg: "genkitApp cannot be nil"}
	}
	if model == "" {
		return nil, &ConfigError{Msg: "model name cannot be empty"}
	}

	return &GenkitGenerator{
		genkitApp: genkitApp,
		provider:  provider,
		model:     model,
		modelName: genkitModelName(provider, model),
	}, nil
}

// Generate выполняет один запрос к модели без повторов.
// Промпт передаётся сообщением, а не через ai.WithPrompt: там текст форматируется как шаблон.
func (p *GenkitGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := genkit.Generate(
		ctx,
		p.genkitApp,
		ai.WithModelName(p.modelName),
		ai.WithMessages(ai.NewUserTextMessage(prompt)),
		ai.WithMiddleware(LoggingMiddleware(p.modelName)),
	)
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", p.modelName, err)
	}

	return resp.Text(), nil
}

func (p *GenkitGenerator) GetName() string {
	return p.provider
}

func (p *GenkitGenerator) GetModel() string {
	return p.model
}
