package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GenericProvider - универсальный провайдер для любого HTTP API
// Поддерживает разные форматы запросов (OpenAI-compatible, Ollama, и т.д.)
type GenericProvider struct {
	client  *http.Client
	name    string
	model   string // Название модели
	baseURL string
	apiKey  string // Опциональный
	format  APIFormat
}

// APIFormat определяет формат API
type APIFormat string

const (
	// FormatOpenAI - OpenAI compatible API (LocalAI, LM Studio, vLLM с OpenAI endpoint, etc.)
	FormatOpenAI APIFormat = "openai"

	// FormatOllama - Ollama API
	FormatOllama APIFormat = "ollama"

	// FormatRaw - простой JSON {"prompt": "...", "temperature": ...}
	FormatRaw APIFormat = "raw"
)

// GenericConfig - конфигурация для Generic провайдера
type GenericConfig struct {
	Name    string        // Название провайдера (для логирования)
	Model   string        // Название модели
	BaseURL string        // Базовый URL (например, "http://localhost:11434")
	APIKey  string        // API ключ (опционально)
	Format  APIFormat     // Формат API
	Timeout time.Duration // 0 - дефолт 2 минуты
}

// NewGenericProvider создаёт новый универсальный HTTP провайдер
func NewGenericProvider(cfg GenericConfig) *GenericProvider {
	if cfg.Name == "" {
		cfg.Name = "generic"
	}
	if cfg.Format == "" {
		cfg.Format = FormatOpenAI
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute // Локальные модели могут быть медленными
	}

	return &GenericProvider{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		name:    cfg.Name,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		format:  cfg.Format,
	}
}

// WithModel возвращает копию провайдера с другой моделью
func (p *GenericProvider) WithModel(model string) *GenericProvider {
	clone := *p
	clone.model = model
	return &clone
}

// Generate выполняет один запрос к модели через HTTP API и возвращает текст ответа
func (p *GenericProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.baseURL == "" {
		return "", &ConfigError{Msg: fmt.Sprintf("%s provider requires BaseURL", p.name)}
	}
	if p.model == "" && p.format != FormatRaw {
		return "", &ConfigError{Msg: fmt.Sprintf("%s provider has no model selected", p.name)}
	}

	httpReq, err := p.buildHTTPRequest(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	body, err := p.do(httpReq)
	if err != nil {
		return "", err
	}

	content, err := p.parseResponse(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return content, nil
}

// Probe проверяет, что модель доступна на сервере
func (p *GenericProvider) Probe(ctx context.Context, model string) error {
	var endpoint string
	switch p.format {
	case FormatOllama:
		endpoint = p.baseURL + "/api/tags"
	case FormatOpenAI:
		endpoint = p.baseURL + "/models"
	default:
		// У raw формата нет списка моделей
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	p.setAuth(req)

	body, err := p.do(req)
	if err != nil {
		return err
	}

	available, err := p.parseModelList(body)
	if err != nil {
		return fmt.Errorf("failed to parse model list: %w", err)
	}

	for _, name := range available {
		if name == model || strings.TrimSuffix(name, ":latest") == model {
			return nil
		}
	}
	return fmt.Errorf("model %s not found on %s (available: %s)", model, p.baseURL, strings.Join(available, ", "))
}

func (p *GenericProvider) do(req *http.Request) ([]byte, error) {
	httpResp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", httpResp.StatusCode, TruncateString(string(body), 500))
	}
	return body, nil
}

// buildHTTPRequest создаёт HTTP запрос в зависимости от формата API
func (p *GenericProvider) buildHTTPRequest(ctx context.Context, prompt string) (*http.Request, error) {
	var requestBody interface{}
	var endpoint string

	switch p.format {
	case FormatOpenAI:
		endpoint = p.baseURL + "/chat/completions"
		requestBody = map[string]interface{}{
			"model": p.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
			"temperature": 0.2,
		}

	case FormatOllama:
		endpoint = p.baseURL + "/api/generate"
		requestBody = map[string]interface{}{
			"model":  p.model,
			"prompt": prompt,
			"stream": false,
			"options": map[string]interface{}{
				"temperature": 0.2,
			},
		}

	case FormatRaw:
		endpoint = p.baseURL
		requestBody = map[string]interface{}{
			"prompt":      prompt,
			"temperature": 0.2,
		}

	default:
		return nil, &ConfigError{Msg: fmt.Sprintf("unsupported API format: %s", p.format)}
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	p.setAuth(req)

	return req, nil
}

func (p *GenericProvider) setAuth(req *http.Request) {
	if p.apiKey != "" {
		// OpenAI-style Authorization
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
}

// parseResponse парсит ответ в зависимости от формата API
func (p *GenericProvider) parseResponse(body []byte) (string, error) {
	switch p.format {
	case FormatOpenAI:
		// OpenAI возвращает: {"choices": [{"message": {"content": "..."}}]}
		var resp struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse OpenAI response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices in response")
		}
		return resp.Choices[0].Message.Content, nil

	case FormatOllama:
		// Ollama возвращает: {"response": "..."}
		var resp struct {
			Response string `json:"response"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse Ollama response: %w", err)
		}
		return resp.Response, nil

	case FormatRaw:
		// Пробуем несколько вариантов: {"text"}, {"response"}, {"content"}
		var resp struct {
			Text     string `json:"text"`
			Response string `json:"response"`
			Content  string `json:"content"`
		}
		if err := json.Unmarshal(body, &resp); err == nil {
			for _, v := range []string{resp.Text, resp.Response, resp.Content} {
				if v != "" {
					return v, nil
				}
			}
		}
		return "", fmt.Errorf("unknown response format: %s", TruncateString(string(body), 200))

	default:
		return "", fmt.Errorf("unsupported format: %s", p.format)
	}
}

// parseModelList достаёт имена моделей из /api/tags (Ollama) или /models (OpenAI)
func (p *GenericProvider) parseModelList(body []byte) ([]string, error) {
	var names []string

	switch p.format {
	case FormatOllama:
		var resp struct {
			Models []struct {
				Name  string `json:"name"`
				Model string `json:"model"`
			} `json:"models"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		for _, m := range resp.Models {
			if m.Name != "" {
				names = append(names, m.Name)
			} else if m.Model != "" {
				names = append(names, m.Model)
			}
		}

	case FormatOpenAI:
		var resp struct {
			Data []struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, err
		}
		for _, m := range resp.Data {
			names = append(names, m.ID)
		}
	}

	return names, nil
}

func (p *GenericProvider) GetName() string {
	return p.name
}

func (p *GenericProvider) GetModel() string {
	return p.model
}
