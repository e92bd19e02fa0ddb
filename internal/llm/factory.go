package llm

import (
	"context"
	"fmt"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/config"
	"google.golang.org/genai"
)

// NewGenerator создаёт генератор по конфигурации: выбирает первую доступную модель
// из списка кандидатов и поднимает нужный провайдер. Вызывается один раз при старте.
func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.ApiKey == "" {
			return nil, &ConfigError{Msg: "gemini provider requires an API key"}
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.ApiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, &ConfigError{Msg: "failed to create Gemini client", Err: err}
		}

		model, err := SelectModel(ctx, cfg.Models, GeminiModelProbe(client))
		if err != nil {
			return nil, err
		}
		return newGenkitGenerator(ctx, cfg, model)

	case config.ProviderOpenAI, config.ProviderLocalAI, config.ProviderLMStudio:
		probe := NewGenericProvider(GenericConfig{
			Name:    cfg.Provider,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.ApiKey,
			Format:  FormatOpenAI,
		}).Probe

		model, err := SelectModel(ctx, cfg.Models, probe)
		if err != nil {
			return nil, err
		}
		return newGenkitGenerator(ctx, cfg, model)

	case config.ProviderOllama:
		provider := NewOllamaProvider(cfg.BaseURL, "")
		model, err := SelectModel(ctx, cfg.Models, provider.Probe)
		if err != nil {
			return nil, err
		}
		return provider.WithModel(model), nil

	default:
		return nil, &ConfigError{Msg: fmt.Sprintf("unknown provider type: %s", cfg.Provider)}
	}
}

func newGenkitGenerator(ctx context.Context, cfg config.LLMConfig, model string) (Generator, error) {
	g, err := InitGenkitApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewGenkitGenerator(g, cfg.Provider, model)
}

// NewOllamaProvider - helper для создания Ollama провайдера
// Пример:
//
//	provider := llm.NewOllamaProvider("http://localhost:11434", "llama3.1:8b")
func NewOllamaProvider(baseURL, model string) *GenericProvider {
	return NewGenericProvider(GenericConfig{
		Name:    "ollama",
		Model:   model,
		BaseURL: baseURL,
		Format:  FormatOllama,
	})
}
