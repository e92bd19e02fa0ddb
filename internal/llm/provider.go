package llm

import "context"

// Generator - интерфейс для любого LLM провайдера.
// Экземпляр создаётся один раз при старте и дальше только читается.
type Generator interface {
	// Generate отправляет готовый промпт модели и возвращает её текстовый ответ как есть
	Generate(ctx context.Context, prompt string) (string, error)

	// GetName возвращает название провайдера (для логирования)
	GetName() string

	// GetModel возвращает используемую модель
	GetModel() string
}
