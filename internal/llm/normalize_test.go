package llm

import (
	"encoding/json"
	"testing"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "generic fence",
			input:    "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json{\"a\": 1}```\n\n",
			expected: `{"a": 1}`,
		},
		{
			name:     "no fence",
			input:    ` {"a": 1} `,
			expected: `{"a": 1}`,
		},
		{
			name:     "opening fence only",
			input:    "```json\n{\"a\": 1}",
			expected: "```json\n{\"a\": 1}",
		},
		{
			name:     "only outermost pair is stripped",
			input:    "```\n```json\n{}\n```\n```",
			expected: "```json\n{}\n```",
		},
		{
			name:     "other language tag stays",
			input:    "```javascript\n{}\n```",
			expected: "javascript\n{}",
		},
		{
			name:     "bare fence",
			input:    "```",
			expected: "",
		},
		{
			name:     "text around fence is not handled",
			input:    "Here you go:\n```json\n{}\n```",
			expected: "Here you go:\n```json\n{}\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFences(tt.input))
		})
	}
}

func TestNormalizeResponse_JSONFenceEqualsInnerText(t *testing.T) {
	fenced := NormalizeResponse("```json\n" + ExampleAnalysisJSON + "\n```")
	plain := NormalizeResponse(ExampleAnalysisJSON)

	require.False(t, fenced.IsError())
	require.False(t, plain.IsError())
	assert.Equal(t, plain, fenced)

	fencedJSON, err := json.Marshal(fenced)
	require.NoError(t, err)
	assert.JSONEq(t, ExampleAnalysisJSON, string(fencedJSON))
}

func TestNormalizeResponse_GenericFence(t *testing.T) {
	result := NormalizeResponse("```\n" + ExampleAnalysisJSON + "\n```")

	require.False(t, result.IsError())
	assert.Equal(t, "CVE-YYYY-XXXXX", result.Analysis().VulnerabilityAnalysis.VulnerabilityID)
}

func TestNormalizeResponse_InvalidJSON(t *testing.T) {
	inner := `{"Vulnerability_Analysis": {"Vulnerability_ID": "CVE-1",},}`

	result := NormalizeResponse("```json\n" + inner + "\n```")

	require.True(t, result.IsError())
	assert.Equal(t, models.ParseErrorMessage, result.Err.Error)
	assert.NotEmpty(t, result.Err.Details)
	assert.Equal(t, inner, result.Err.LLMRawResponse)
}

func TestNormalizeResponse_NotAnObject(t *testing.T) {
	for _, input := range []string{`["a", "b"]`, `"text"`, `null`, ``, `I cannot help with that.`} {
		result := NormalizeResponse(input)
		require.True(t, result.IsError(), "input %q", input)
		assert.Equal(t, models.ParseErrorMessage, result.Err.Error)
		assert.Equal(t, input, result.Err.LLMRawResponse)
	}
}

func TestNormalizeResponse_EmptyFencedReply(t *testing.T) {
	for _, input := range []string{"```json\n```", "   \n  "} {
		result := NormalizeResponse(input)
		require.True(t, result.IsError(), "input %q", input)

		data, err := json.Marshal(result)
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, models.ParseErrorMessage, out["error"])
		assert.Contains(t, out, "details")
		require.Contains(t, out, "llm_raw_response")
		assert.Equal(t, "", out["llm_raw_response"])
	}
}

func TestNormalizeResponse_NoSchemaValidation(t *testing.T) {
	// Неожиданные ключи и типы возвращаются как есть
	input := `{"Severity": 5, "extra": {"nested": [1, 2.50]}}`

	result := NormalizeResponse(input)

	require.False(t, result.IsError())
	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))
	assert.JSONEq(t, `[1, 2.50]`, string(mustRaw(t, result.Raw["extra"])["nested"]))
}

func mustRaw(t *testing.T, data json.RawMessage) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}
