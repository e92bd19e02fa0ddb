package llm

import (
	"context"
	"log"
	"time"

	"github.com/firebase/genkit/go/ai"
)

// NOTE: Для просмотра LLM запросов/ответов используй GenKit DevUI!
// Запусти: genkit start -- go run ./cmd serve
// Затем открой: http://localhost:4000

// LoggingMiddleware логирует длительность и исход каждого вызова модели.
// Повторов нет: неудачный анализ пользователь отправляет заново.
func LoggingMiddleware(modelName string) ai.ModelMiddleware {
	return func(next ai.ModelFunc) ai.ModelFunc {
		return func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			start := time.Now()
			log.Printf("🤖 Calling %s", modelName)

			resp, err := next(ctx, req, cb)
			if err != nil {
				log.Printf("❌ %s failed after %v: %v", modelName, time.Since(start).Round(time.Millisecond), err)
				return nil, err
			}

			log.Printf("✅ %s answered in %v", modelName, time.Since(start).Round(time.Millisecond))
			return resp, nil
		}
	}
}
