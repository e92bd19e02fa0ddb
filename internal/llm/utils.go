package llm

import (
	"context"
	"fmt"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/config"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/openai/openai-go/option"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Genkit Initialization
// ═══════════════════════════════════════════════════════════════════════════════

// InitGenkitApp initializes a Genkit app with the appropriate LLM plugin
// Supports: gemini, openai, localai, lm-studio
func InitGenkitApp(ctx context.Context, cfg config.LLMConfig) (*genkit.Genkit, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.ApiKey == "" {
			return nil, &ConfigError{Msg: "gemini provider requires an API key"}
		}
		return genkit.Init(
			ctx, genkit.WithPlugins(
				&googlegenai.GoogleAI{
					APIKey: cfg.ApiKey,
				},
			),
		), nil

	case config.ProviderOpenAI, config.ProviderLocalAI, config.ProviderLMStudio:
		return genkit.Init(
			ctx, genkit.WithPlugins(
				&compat_oai.OpenAICompatible{
					Provider: cfg.Provider,
					Opts:     openAIRequestOptions(cfg),
				},
			),
		), nil

	default:
		return nil, &ConfigError{Msg: fmt.Sprintf("unsupported genkit provider: %s", cfg.Provider)}
	}
}

// openAIRequestOptions endpoint и ключ для OpenAI-совместимого клиента.
// Без ключа клиент берёт OPENAI_API_KEY из окружения; локальным серверам ключ не нужен.
func openAIRequestOptions(cfg config.LLMConfig) []option.RequestOption {
	opts := []option.RequestOption{option.WithBaseURL(cfg.BaseURL)}
	if cfg.ApiKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.ApiKey))
	}
	return opts
}

// genkitModelName returns the fully qualified model name registered by the plugin
func genkitModelName(provider, model string) string {
	if provider == config.ProviderGemini {
		return "googleai/" + model
	}
	return provider + "/" + model
}

// TruncateString truncates a string to maxLen with "..." suffix if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
