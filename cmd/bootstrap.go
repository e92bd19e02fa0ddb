package main

import (
	"context"
	"fmt"
	"log"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/advisory"
	"github.com/BetterCallFirewall/VulnAdvisor/internal/analyzer"
	"github.com/BetterCallFirewall/VulnAdvisor/internal/config"
	"github.com/BetterCallFirewall/VulnAdvisor/internal/llm"
)

// bootstrap загружает конфигурацию и один раз поднимает генератор и анализатор.
// Любая ошибка здесь фатальна для процесса.
func bootstrap(ctx context.Context, configPath string) (*config.Config, *analyzer.LLMAnalyzer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	generator, err := llm.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	log.Printf("🤖 Using %s model %s", generator.GetName(), generator.GetModel())

	a, err := analyzer.NewLLMAnalyzer(generator)
	if err != nil {
		return nil, nil, err
	}
	return cfg, a, nil
}

func newFetcher(cfg *config.Config) *advisory.Fetcher {
	return advisory.NewFetcher(advisory.FetcherConfig{
		Timeout:              cfg.Fetch.Timeout,
		MaxBodyBytes:         cfg.Fetch.MaxBodyBytes,
		UserAgent:            cfg.Fetch.UserAgent,
		AllowPrivateNetworks: cfg.Fetch.AllowPrivateNetworks,
	})
}
