package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/models"
)

const maxRequestBytes = 1 << 20

var errEmptyInput = errors.New(emptyInputWarning)

// resolveInput возвращает текст для анализа и его источник.
// Вставленный текст важнее URL; URL загружается только при пустом тексте.
func (s *Server) resolveInput(ctx context.Context, text, advisoryURL string) (string, string, error) {
	advisoryURL = strings.TrimSpace(advisoryURL)
	if strings.TrimSpace(text) != "" {
		return text, "", nil
	}
	if advisoryURL == "" {
		return "", "", errEmptyInput
	}
	if s.fetcher == nil {
		return "", "", errors.New("advisory fetching is disabled")
	}

	fetched, err := s.fetcher.FetchText(ctx, advisoryURL)
	if err != nil {
		log.Printf("❌ Failed to fetch advisory %s: %v", advisoryURL, err)
		return "", "", fmt.Errorf("failed to fetch advisory: %w", err)
	}
	return fetched, advisoryURL, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{})
}

func (s *Server) handleAnalyzeForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := pageData{
		Text: r.PostFormValue("vulnerability_text"),
		URL:  r.PostFormValue("advisory_url"),
	}

	text, source, err := s.resolveInput(r.Context(), data.Text, data.URL)
	if errors.Is(err, errEmptyInput) {
		data.Warning = emptyInputWarning
		s.render(w, http.StatusOK, data)
		return
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		s.render(w, http.StatusOK, data)
		return
	}

	report := s.analyzer.AnalyzeReport(r.Context(), text, source)
	s.hub.Broadcast(report)

	data.Model = report.Model
	if report.Result.IsError() {
		data.ErrorMessage, data.ErrorJSON = errorView(report.Result)
	} else {
		data.Analysis = newAnalysisView(report)
	}
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResult{Error: "invalid request body", Details: err.Error()})
		return
	}

	text, source, err := s.resolveInput(r.Context(), req.Text, req.URL)
	if errors.Is(err, errEmptyInput) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResult{Error: models.EmptyInputMessage})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, models.ErrorResult{Error: err.Error()})
		return
	}

	report := s.analyzer.AnalyzeReport(r.Context(), text, source)
	s.hub.Broadcast(report)

	writeJSON(w, statusForResult(report.Result), report)
}

// statusForResult HTTP статус для результата анализа
func statusForResult(result models.Result) int {
	e := result.AsError()
	if e == nil {
		return http.StatusOK
	}
	// Ключ "error" в ответе самой модели
	if result.Err == nil {
		return http.StatusBadGateway
	}
	switch msg := e.Error; {
	case msg == models.EmptyInputMessage:
		return http.StatusBadRequest
	case msg == models.ParseErrorMessage, strings.HasPrefix(msg, models.ConfigurationErrorPrefix):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.AnalysisSchema())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "vulnadvisor",
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("❌ Failed to render template: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
