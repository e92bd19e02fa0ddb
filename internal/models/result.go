package models

import (
	"encoding/json"
	"fmt"
)

// Сообщения об ошибках, которые видит пользователь.
const (
	EmptyInputMessage        = "Input vulnerability text cannot be empty."
	ParseErrorMessage        = "Failed to parse LLM response as JSON. The LLM might have hallucinated or not adhered to the format."
	UnexpectedErrorMessage   = "An unexpected error occurred during LLM analysis."
	ConfigurationErrorPrefix = "Configuration error: "
)

// ErrorResult ошибка анализа в виде данных, а не паники
type ErrorResult struct {
	Error          string `json:"error"`
	Details        string `json:"details,omitempty"`
	LLMRawResponse string `json:"llm_raw_response,omitempty"`
}

// MarshalJSON: у ошибки парсинга всегда есть details и llm_raw_response,
// у непредвиденной ошибки всегда есть details, даже пустые.
func (e ErrorResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Error          string  `json:"error"`
		Details        *string `json:"details,omitempty"`
		LLMRawResponse *string `json:"llm_raw_response,omitempty"`
	}{Error: e.Error}

	if e.Details != "" || e.Error == ParseErrorMessage || e.Error == UnexpectedErrorMessage {
		out.Details = &e.Details
	}
	if e.LLMRawResponse != "" || e.Error == ParseErrorMessage {
		out.LLMRawResponse = &e.LLMRawResponse
	}
	return json.Marshal(out)
}

// Result - единственное значение, которое возвращает клиент анализа.
// Заполнено ровно одно из полей: Raw (объект модели как есть) или Err.
type Result struct {
	Raw map[string]json.RawMessage
	Err *ErrorResult
}

// Success оборачивает распарсенный ответ модели
func Success(raw map[string]json.RawMessage) Result {
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	return Result{Raw: raw}
}

// Failure оборачивает ошибку анализа
func Failure(e ErrorResult) Result {
	return Result{Err: &e}
}

// IsError сообщает, есть ли в результате ключ "error": собственная ошибка анализа
// или объект модели со строковым "error" (так же, как его прочитает UnmarshalJSON).
func (r Result) IsError() bool {
	return r.AsError() != nil
}

// AsError возвращает ошибку результата или nil.
// Для объекта модели с ключом "error" поля берутся из самого объекта; Raw не меняется.
func (r Result) AsError() *ErrorResult {
	if r.Err != nil {
		return r.Err
	}
	msg, ok := r.Raw["error"]
	if !ok {
		return nil
	}

	var e ErrorResult
	if err := json.Unmarshal(msg, &e.Error); err != nil {
		return nil
	}
	// Нестроковые details и llm_raw_response игнорируются
	_ = json.Unmarshal(r.Raw["details"], &e.Details)
	_ = json.Unmarshal(r.Raw["llm_raw_response"], &e.LLMRawResponse)
	return &e
}

// Analysis возвращает типизированное представление для отображения (nil при ошибке)
func (r Result) Analysis() *AnalysisResult {
	if r.IsError() {
		return nil
	}
	return DecodeAnalysis(r.Raw)
}

// MarshalJSON отдаёт объект модели без изменений или объект с ключом "error"
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(r.Err)
	}
	if r.Raw == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Raw)
}

// UnmarshalJSON - обратная операция для клиентов API.
// Объект со строковым ключом "error" считается ошибкой.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("result must be a JSON object: %w", err)
	}

	if msg, ok := raw["error"]; ok {
		var e ErrorResult
		if err := json.Unmarshal(msg, &e.Error); err == nil {
			if err := json.Unmarshal(data, &e); err != nil {
				return err
			}
			*r = Failure(e)
			return nil
		}
	}

	*r = Success(raw)
	return nil
}
