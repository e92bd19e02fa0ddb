package llm

import (
	"errors"

	"github.com/BetterCallFirewall/VulnAdvisor/internal/models"
)

// ConfigError ошибка конфигурации провайдера (нет ключа, модель недоступна и т.п.)
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError сообщает, есть ли в цепочке ошибка конфигурации
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// ClassifyError превращает ошибку вызова модели в ErrorResult
func ClassifyError(err error) models.ErrorResult {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return models.ErrorResult{Error: models.ConfigurationErrorPrefix + cfgErr.Error()}
	}
	return models.ErrorResult{
		Error:   models.UnexpectedErrorMessage,
		Details: err.Error(),
	}
}
