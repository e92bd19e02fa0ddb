package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnalysisJSON = `{
    "Vulnerability_Analysis": {
        "Vulnerability_ID": "CVE-2021-44228",
        "Vulnerable_Products": ["Apache Log4j2 (2.0-beta9 - 2.14.1)"],
        "Severity": "Critical",
        "Vulnerability_Type": "Remote Code Execution",
        "Brief_Description": "JNDI lookups in logged strings allow RCE.",
        "Exploit_Status": "Actively exploited in the wild",
        "References": ["https://nvd.nist.gov/vuln/detail/CVE-2021-44228"]
    },
    "Potential_Impact": "Full server compromise.",
    "Actionable_Recommendation": {
        "Primary_Mitigation": "Upgrade Log4j2 to 2.17.1 or later.",
        "Secondary_Mitigations_Workarounds": ["Set log4j2.formatMsgNoLookups=true"],
        "Urgency_Level": "Immediate",
        "Verification_Steps": ["Check product version numbers."]
    }
}`

func TestResult_MarshalSuccessKeepsModelKeys(t *testing.T) {
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(sampleAnalysisJSON), &raw))

	data, err := json.Marshal(Success(raw))
	require.NoError(t, err)

	var top map[string]any
	require.NoError(t, json.Unmarshal(data, &top))
	assert.Len(t, top, 3)
	assert.Contains(t, top, "Vulnerability_Analysis")
	assert.Contains(t, top, "Potential_Impact")
	assert.Contains(t, top, "Actionable_Recommendation")
	assert.NotContains(t, top, "error")
}

func TestResult_MarshalFailure(t *testing.T) {
	data, err := json.Marshal(Failure(ErrorResult{Error: EmptyInputMessage}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Input vulnerability text cannot be empty."}`, string(data))

	data, err = json.Marshal(Failure(ErrorResult{
		Error:          ParseErrorMessage,
		Details:        "unexpected end of JSON input",
		LLMRawResponse: "{",
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"error": "Failed to parse LLM response as JSON. The LLM might have hallucinated or not adhered to the format.",
		"details": "unexpected end of JSON input",
		"llm_raw_response": "{"
	}`, string(data))
}

func TestResult_UnmarshalBothShapes(t *testing.T) {
	var ok Result
	require.NoError(t, json.Unmarshal([]byte(sampleAnalysisJSON), &ok))
	assert.False(t, ok.IsError())
	assert.Equal(t, "CVE-2021-44228", ok.Analysis().VulnerabilityAnalysis.VulnerabilityID)

	var failed Result
	require.NoError(t, json.Unmarshal([]byte(`{"error":"boom","details":"d"}`), &failed))
	require.True(t, failed.IsError())
	assert.Equal(t, "boom", failed.Err.Error)
	assert.Equal(t, "d", failed.Err.Details)
	assert.Nil(t, failed.Analysis())
}

func TestAnalysisResult_RoundTrip(t *testing.T) {
	var original AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(sampleAnalysisJSON), &original))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded AnalysisResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
	assert.JSONEq(t, sampleAnalysisJSON, string(data))
}

func TestDecodeAnalysis_Lenient(t *testing.T) {
	// Severity объектом вместо строки: остальные поля должны сохраниться
	raw := map[string]json.RawMessage{
		"Vulnerability_Analysis": json.RawMessage(`{"Vulnerability_ID":"CVE-1","Severity":{"level":"High"}}`),
		"Potential_Impact":       json.RawMessage(`"bad"`),
	}

	analysis := DecodeAnalysis(raw)
	require.NotNil(t, analysis)
	require.NotNil(t, analysis.VulnerabilityAnalysis)
	assert.Equal(t, "CVE-1", analysis.VulnerabilityAnalysis.VulnerabilityID)
	assert.Empty(t, analysis.VulnerabilityAnalysis.Severity)
	assert.Equal(t, "bad", analysis.PotentialImpact)
	assert.Nil(t, analysis.ActionableRecommendation)
}

func TestAnalysisSchema(t *testing.T) {
	schema := AnalysisSchema()
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	assert.Contains(t, string(data), "Vulnerability_Analysis")
	assert.Contains(t, string(data), "Secondary_Mitigations_Workarounds")
	assert.Contains(t, string(data), "Verification_Steps")
}

func TestErrorResult_MarshalKeepsRequiredKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    ErrorResult
		expected string
	}{
		{
			name:     "parse error with empty reply",
			input:    ErrorResult{Error: ParseErrorMessage, Details: "unexpected end of JSON input"},
			expected: `{"error": "` + ParseErrorMessage + `", "details": "unexpected end of JSON input", "llm_raw_response": ""}`,
		},
		{
			name:     "unexpected error with empty message",
			input:    ErrorResult{Error: UnexpectedErrorMessage},
			expected: `{"error": "` + UnexpectedErrorMessage + `", "details": ""}`,
		},
		{
			name:     "configuration error has no details",
			input:    ErrorResult{Error: ConfigurationErrorPrefix + "API key not valid"},
			expected: `{"error": "Configuration error: API key not valid"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(Failure(tt.input))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestResult_ModelReplyWithErrorKey(t *testing.T) {
	input := `{"error": "model refused", "details": "policy", "note": 1}`

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(input), &raw))
	result := Success(raw)

	require.True(t, result.IsError())
	assert.Equal(t, "model refused", result.AsError().Error)
	assert.Equal(t, "policy", result.AsError().Details)
	assert.Nil(t, result.Analysis())

	// Объект модели отдаётся без изменений
	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.IsError(), decoded.IsError())
}

func TestResult_NonStringErrorKeyIsNotAnError(t *testing.T) {
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(`{"error": 5, "Potential_Impact": "x"}`), &raw))
	result := Success(raw)

	assert.False(t, result.IsError())
	assert.Nil(t, result.AsError())

	data, err := json.Marshal(result)
	require.NoError(t, err)
	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.False(t, decoded.IsError())
}
