package models

import "github.com/invopop/jsonschema"

// AnalysisSchema JSON схема ожидаемого ответа модели (только для документации, ответы ей не валидируются)
func AnalysisSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&AnalysisResult{})
	schema.Title = "AnalysisResult"
	return schema
}
