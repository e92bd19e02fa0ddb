package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/config"
)

func TestInitGenkitApp_OpenAICompatibleUsesBaseURLAndKey(t *testing.T) {
	var gotPath, gotAuth, gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var body struct {
			Model string `json:"model"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotModel = body.Model

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "local-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"Potential_Impact\": \"x\"}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
		}`))
	}))
	defer server.Close()

	cfg := config.LLMConfig{
		Provider: config.ProviderLocalAI,
		BaseURL:  server.URL + "/v1",
		ApiKey:   "local-key",
	}

	g, err := InitGenkitApp(context.Background(), cfg)
	require.NoError(t, err)

	gen, err := NewGenkitGenerator(g, cfg.Provider, "local-model")
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "analyze this")
	require.NoError(t, err)

	assert.Equal(t, `{"Potential_Impact": "x"}`, text)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer local-key", gotAuth)
	assert.Equal(t, "local-model", gotModel)
}

func TestInitGenkitApp_Errors(t *testing.T) {
	_, err := InitGenkitApp(context.Background(), config.LLMConfig{Provider: config.ProviderGemini})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = InitGenkitApp(context.Background(), config.LLMConfig{Provider: config.ProviderOllama})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestGenkitModelName_ProviderConstants(t *testing.T) {
	assert.Equal(t, "googleai/gemini-1.5-flash", genkitModelName(config.ProviderGemini, "gemini-1.5-flash"))
	assert.Equal(t, "lm-studio/qwen2.5", genkitModelName(config.ProviderLMStudio, "qwen2.5"))
}
