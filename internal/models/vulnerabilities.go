package models

import (
	"encoding/json"
	"errors"
)

// AnalysisResult структурированный разбор отчёта об уязвимости, который возвращает LLM.
// Вложенные секции - указатели: модель может их не вернуть, схема не навязывается.
type AnalysisResult struct {
	VulnerabilityAnalysis    *VulnerabilityAnalysis    `json:"Vulnerability_Analysis,omitempty" jsonschema:"description=Key details extracted from the raw report"`
	PotentialImpact          string                    `json:"Potential_Impact,omitempty" jsonschema:"description=Worst-case scenario upon exploitation (2-4 sentences)"`
	ActionableRecommendation *ActionableRecommendation `json:"Actionable_Recommendation,omitempty" jsonschema:"description=What the security operations team should do"`
}

// VulnerabilityAnalysis ключевые детали уязвимости
type VulnerabilityAnalysis struct {
	VulnerabilityID    string   `json:"Vulnerability_ID,omitempty" jsonschema:"description=Official ID such as CVE-YYYY-XXXXX or a vendor-specific ID"`
	VulnerableProducts []string `json:"Vulnerable_Products,omitempty" jsonschema:"description=Affected software or hardware with versions"`
	Severity           string   `json:"Severity,omitempty" jsonschema:"description=Critical or High or Medium or Low with a brief justification"`
	VulnerabilityType  string   `json:"Vulnerability_Type,omitempty" jsonschema:"description=Class of vulnerability (RCE / SQL Injection / XSS / ...)"`
	BriefDescription   string   `json:"Brief_Description,omitempty" jsonschema:"description=Concise technical summary (1-3 sentences)"`
	ExploitStatus      string   `json:"Exploit_Status,omitempty" jsonschema:"description=Exploited in the wild / PoC available / theoretical / unknown"`
	References         []string `json:"References,omitempty" jsonschema:"description=Links to advisories / patches / NVD entries"`
}

// ActionableRecommendation рекомендации для команды безопасности
type ActionableRecommendation struct {
	PrimaryMitigation               string   `json:"Primary_Mitigation,omitempty" jsonschema:"description=Most direct and important action to take"`
	SecondaryMitigationsWorkarounds []string `json:"Secondary_Mitigations_Workarounds,omitempty" jsonschema:"description=Additional measures or temporary fixes"`
	UrgencyLevel                    string   `json:"Urgency_Level,omitempty" jsonschema:"description=Immediate / High Priority / Medium Priority / Low Priority with justification"`
	VerificationSteps               []string `json:"Verification_Steps,omitempty" jsonschema:"description=Steps to confirm the mitigation was successful"`
}

// DecodeAnalysis раскладывает сырой объект модели в AnalysisResult.
// Поля с неожиданным типом пропускаются: несоответствие схеме не считается ошибкой.
func DecodeAnalysis(raw map[string]json.RawMessage) *AnalysisResult {
	if raw == nil {
		return nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return &AnalysisResult{}
	}

	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return &AnalysisResult{}
		}
	}
	return &result
}
