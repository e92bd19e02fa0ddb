package web

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/models"
)

const (
	notAvailable        = "N/A"
	emptyInputWarning   = "Please paste a vulnerability report to analyze."
	unknownErrorMessage = "An unknown error occurred. Check console."
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// pageData данные шаблона index.html
type pageData struct {
	Text    string
	URL     string
	Model   string
	Warning string

	// Ошибка анализа или загрузки advisory
	ErrorMessage string
	ErrorJSON    string

	Analysis *analysisView
}

type analysisView struct {
	ReportID         string
	ProcessingTimeMs int64

	VulnerabilityID    string
	VulnerableProducts []string
	Severity           string
	VulnerabilityType  string
	BriefDescription   string
	ExploitStatus      string
	References         []string

	PrimaryMitigation string
	SecondaryMeasures []string
	UrgencyLevel      string
	VerificationSteps []string
	PotentialImpact   string

	KeyDetailsJSON     string
	RecommendationJSON string
	RawJSON            string
}

// errorView сообщение для ошибки: details, если есть, иначе общий текст.
// rawJSON - результат целиком, как его отдаёт API.
func errorView(result models.Result) (message, rawJSON string) {
	if e := result.AsError(); e != nil {
		message = e.Details
	}
	if message == "" {
		message = unknownErrorMessage
	}
	return "Error during analysis: " + message, prettyJSON(result)
}

// newAnalysisView собирает панели отображения; отсутствующие поля показываются как N/A
func newAnalysisView(report models.Report) *analysisView {
	analysis := report.Result.Analysis()
	if analysis == nil {
		analysis = &models.AnalysisResult{}
	}
	details := analysis.VulnerabilityAnalysis
	if details == nil {
		details = &models.VulnerabilityAnalysis{}
	}
	rec := analysis.ActionableRecommendation
	if rec == nil {
		rec = &models.ActionableRecommendation{}
	}

	return &analysisView{
		ReportID:         report.ID,
		ProcessingTimeMs: report.ProcessingTimeMs,

		VulnerabilityID:    orNA(details.VulnerabilityID),
		VulnerableProducts: listOrNA(details.VulnerableProducts),
		Severity:           orNA(details.Severity),
		VulnerabilityType:  orNA(details.VulnerabilityType),
		BriefDescription:   orNA(details.BriefDescription),
		ExploitStatus:      orNA(details.ExploitStatus),
		References:         details.References,

		PrimaryMitigation: orNA(rec.PrimaryMitigation),
		SecondaryMeasures: listOrNA(rec.SecondaryMitigationsWorkarounds),
		UrgencyLevel:      orNA(rec.UrgencyLevel),
		VerificationSteps: listOrNA(rec.VerificationSteps),
		PotentialImpact:   orNA(analysis.PotentialImpact),

		KeyDetailsJSON:     prettyRaw(report.Result.Raw["Vulnerability_Analysis"]),
		RecommendationJSON: prettyRaw(report.Result.Raw["Actionable_Recommendation"]),
		RawJSON:            prettyJSON(report.Result),
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

func listOrNA(items []string) []string {
	if len(items) == 0 {
		return []string{notAvailable}
	}
	return items
}

func prettyJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// prettyRaw форматирует секцию ответа модели; отсутствующая секция - пустой объект
func prettyRaw(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return prettyJSON(v)
}
