package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// ModelProbe проверяет, доступна ли модель для текущего ключа/сервера
type ModelProbe func(ctx context.Context, model string) error

// SelectModel перебирает кандидатов по порядку и возвращает первого доступного.
// Если не подошёл ни один - ошибка конфигурации, процесс не должен стартовать.
func SelectModel(ctx context.Context, candidates []string, probe ModelProbe) (string, error) {
	var tried []string
	var errs []error

	for _, model := range candidates {
		model = strings.TrimSpace(model)
		if model == "" {
			continue
		}
		tried = append(tried, model)

		if probe != nil {
			if err := probe(ctx, model); err != nil {
				log.Printf("⚠️ Model %s is not available: %v", model, err)
				errs = append(errs, fmt.Errorf("%s: %w", model, err))
				continue
			}
		}

		log.Printf("✅ Using model: %s", model)
		return model, nil
	}

	if len(tried) == 0 {
		return "", &ConfigError{Msg: "no model candidates configured"}
	}

	return "", &ConfigError{
		Msg: fmt.Sprintf("failed to initialize generative models (%s) for this API key or region", strings.Join(tried, ", ")),
		Err: errors.Join(errs...),
	}
}

// GeminiModelProbe проверяет модель через Gemini API (models.get)
func GeminiModelProbe(client *genai.Client) ModelProbe {
	return func(ctx context.Context, model string) error {
		if _, err := client.Models.Get(ctx, model, nil); err != nil {
			return err
		}
		return nil
	}
}
