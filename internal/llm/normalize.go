package llm

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/models"
)

const jsonCodeFence = codeFence + "json"

// StripCodeFences снимает внешнюю пару markdown-ограждений (```json ... ``` или ``` ... ```).
// Снимается только самая внешняя пара, частичные ограждения не трогаются.
func StripCodeFences(content string) string {
	content = strings.TrimSpace(content)

	switch {
	case strings.HasPrefix(content, jsonCodeFence) && strings.HasSuffix(content, codeFence):
		content = sliceBetween(content, len(jsonCodeFence), len(codeFence))
	case strings.HasPrefix(content, codeFence) && strings.HasSuffix(content, codeFence):
		content = sliceBetween(content, len(codeFence), len(codeFence))
	}

	return strings.TrimSpace(content)
}

// sliceBetween отрезает prefix байт слева и suffix справа; если они перекрываются - пустая строка
func sliceBetween(s string, prefix, suffix int) string {
	end := len(s) - suffix
	if end <= prefix {
		return ""
	}
	return s[prefix:end]
}

// NormalizeResponse разбирает ответ модели в JSON объект.
// Объект возвращается без валидации схемы; при ошибке парсинга прикладывается сырой текст.
func NormalizeResponse(response string) models.Result {
	content := StripCodeFences(response)

	raw, err := parseJSONObject(content)
	if err != nil {
		log.Printf("❌ JSON Parse Error: failed to parse LLM response as valid JSON: %v", err)
		log.Printf("📄 Raw LLM response (first 500 chars): %s", TruncateString(content, 500))
		return models.Failure(models.ErrorResult{
			Error:          models.ParseErrorMessage,
			Details:        err.Error(),
			LLMRawResponse: content,
		})
	}

	return models.Success(raw)
}

func parseJSONObject(content string) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, err
	}
	// "null" декодируется в nil map без ошибки
	if raw == nil {
		return nil, errors.New("expected a JSON object, got null")
	}
	return raw, nil
}
