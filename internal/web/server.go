package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/config"
	"github.com/BetterCallFirewall/VulnAdvisor/internal/models"
	"github.com/BetterCallFirewall/VulnAdvisor/internal/websocket"
)

//go:embed templates/*.html
var templateFS embed.FS

type analyzerI interface {
	AnalyzeReport(ctx context.Context, vulnerabilityText, source string) models.Report
}

type fetcherI interface {
	FetchText(ctx context.Context, url string) (string, error)
}

type Server struct {
	config    *config.Config
	analyzer  analyzerI
	fetcher   fetcherI
	hub       *websocket.Hub
	templates *template.Template
	server    *http.Server
}

// NewServer собирает HTTP сервер; хаб запускается вызывающей стороной (hub.Run)
func NewServer(cfg *config.Config, analyzer analyzerI, fetcher fetcherI, hub *websocket.Hub) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Server{
		config:    cfg,
		analyzer:  analyzer,
		fetcher:   fetcher,
		hub:       hub,
		templates: tmpl,
	}, nil
}

// Handler маршруты сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// HTML форма
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyzeForm)

	// API endpoints
	mux.HandleFunc("POST /api/analyze", s.handleAnalyzeAPI)
	mux.HandleFunc("GET /api/schema", s.handleSchema)

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.hub.ServeWS)

	// Health check
	mux.HandleFunc("GET /health", s.handleHealth)

	return logRequests(CORS(mux))
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:        s.config.Web.ListenAddr,
		Handler:     s.Handler(),
		ReadTimeout: 10 * time.Second,
		// Запрос к модели может идти долго
		WriteTimeout: 3 * time.Minute,
	}

	log.Printf("🌐 VulnAdvisor UI listening on %s", s.config.Web.ListenAddr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
