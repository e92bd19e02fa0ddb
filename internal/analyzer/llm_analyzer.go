package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/llm"
	"github.com/BetterCallFirewall/VulnAdvisor/internal/models"
)

// LLMAnalyzer разбирает сырые отчёты об уязвимостях через LLM.
// Генератор создаётся один раз при старте и разделяется между запросами только на чтение.
type LLMAnalyzer struct {
	generator llm.Generator
}

func NewLLMAnalyzer(generator llm.Generator) (*LLMAnalyzer, error) {
	if generator == nil {
		return nil, &llm.ConfigError{Msg: "LLM generator is not initialized"}
	}
	return &LLMAnalyzer{generator: generator}, nil
}

// Model возвращает имя модели, выбранной при старте
func (a *LLMAnalyzer) Model() string {
	return a.generator.GetName() + "/" + a.generator.GetModel()
}

// Analyze отправляет отчёт модели и возвращает разобранный JSON или ErrorResult.
// Пустой ввод отклоняется без обращения к модели; повторов нет; паники не выходят наружу.
func (a *LLMAnalyzer) Analyze(ctx context.Context, vulnerabilityText string) (result models.Result) {
	if strings.TrimSpace(vulnerabilityText) == "" {
		return models.Failure(models.ErrorResult{Error: models.EmptyInputMessage})
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ An unexpected error occurred during LLM analysis: %v", r)
			result = models.Failure(models.ErrorResult{
				Error:   models.UnexpectedErrorMessage,
				Details: fmt.Sprint(r),
			})
		}
	}()

	prompt := llm.BuildVulnerabilityAnalysisPrompt(vulnerabilityText)

	response, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		if llm.IsConfigError(err) {
			log.Printf("❌ Configuration Error: %v", err)
		} else {
			log.Printf("❌ An unexpected error occurred during LLM analysis: %v", err)
		}
		return models.Failure(llm.ClassifyError(err))
	}

	return llm.NormalizeResponse(response)
}

// AnalyzeReport - Analyze с метаданными (ID, модель, время обработки) для API и WebSocket
func (a *LLMAnalyzer) AnalyzeReport(ctx context.Context, vulnerabilityText, source string) models.Report {
	started := time.Now()
	result := a.Analyze(ctx, vulnerabilityText)
	report := models.NewReport(a.Model(), source, started, result)

	if e := result.AsError(); e != nil {
		log.Printf("⚠️ Analysis %s failed in %dms: %s", report.ID, report.ProcessingTimeMs, e.Error)
	} else {
		log.Printf("🎯 Analysis %s complete in %dms", report.ID, report.ProcessingTimeMs)
	}
	return report
}
