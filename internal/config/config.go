package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Поддерживаемые провайдеры LLM
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderLocalAI  = "localai"
	ProviderLMStudio = "lm-studio"
	ProviderOllama   = "ollama"
)

// DefaultGeminiModels порядок перебора моделей при старте: первая доступная побеждает
var DefaultGeminiModels = []string{"gemini-1.5-flash", "gemini-1.5-pro"}

type Config struct {
	Web   WebConfig   `yaml:"web"`
	LLM   LLMConfig   `yaml:"llm"`
	Fetch FetchConfig `yaml:"fetch"`
}

type LLMConfig struct {
	Provider string   `yaml:"provider"`
	Models   []string `yaml:"models"`
	BaseURL  string   `yaml:"base_url"`
	ApiKey   string   `yaml:"api_key"`
}

type WebConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	UserAgent    string        `yaml:"user_agent"`

	// По умолчанию запрещены loopback, частные и link-local адреса
	AllowPrivateNetworks bool `yaml:"allow_private_networks"`
}

// Default конфигурация без файла и переменных окружения
func Default() *Config {
	return &Config{
		Web: WebConfig{
			ListenAddr: ":8080",
		},
		LLM: LLMConfig{
			Provider: ProviderGemini,
		},
		Fetch: FetchConfig{
			Timeout:      30 * time.Second,
			MaxBodyBytes: 512 << 10,
			UserAgent:    "VulnAdvisor-Fetcher/1.0",
		},
	}
}

// Load собирает конфигурацию: .env -> YAML файл (если задан) -> переменные окружения.
// Отсутствие API ключа для Gemini - фатальная ошибка старта.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("VULNADVISOR_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("WEB_LISTEN_ADDR"); v != "" {
		c.Web.ListenAddr = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("LLM_MODELS"); v != "" {
		c.LLM.Models = splitList(v)
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.ApiKey = v
	} else if v := os.Getenv("API_KEY"); v != "" {
		c.LLM.ApiKey = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FETCH_TIMEOUT %q: %w", v, err)
		}
		c.Fetch.Timeout = d
	}
	if v := os.Getenv("FETCH_ALLOW_PRIVATE_NETWORKS"); v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FETCH_ALLOW_PRIVATE_NETWORKS %q: %w", v, err)
		}
		c.Fetch.AllowPrivateNetworks = allow
	}

	if len(c.LLM.Models) == 0 && c.LLM.Provider == ProviderGemini {
		c.LLM.Models = append([]string(nil), DefaultGeminiModels...)
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.ApiKey == "" {
			return errors.New("GEMINI_API_KEY not found in environment variables. Please set it in a .env file located at your project root")
		}
	case ProviderOpenAI, ProviderLocalAI, ProviderLMStudio, ProviderOllama:
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("provider %s requires LLM_BASE_URL", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported provider: %s", c.LLM.Provider)
	}

	if len(c.LLM.Models) == 0 {
		return fmt.Errorf("provider %s requires at least one model in LLM_MODELS", c.LLM.Provider)
	}
	if c.Web.ListenAddr == "" {
		return errors.New("web listen address is empty")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
