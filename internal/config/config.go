package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	TranslatorEndpoint string `envconfig:"HOMER_TRANSLATOR_ENDPOINT" default:"http://127.0.0.1:8845/v1"`
	TranslatorModel    string `envconfig:"HOMER_TRANSLATOR_MODEL" default:""`
	SummarizerEndpoint string `envconfig:"HOMER_SUMMARIZER_ENDPOINT" default:"http://127.0.0.1:8845/v1"`
	SummarizerModel    string `envconfig:"HOMER_SUMMARIZER_MODEL" default:""`

	SummaryMinChars int    `envconfig:"HOMER_SUMMARY_MIN_CHARS" default:"150"`
	SummaryLanguage string `envconfig:"HOMER_SUMMARY_LANGUAGE" default:"en"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SummaryMinChars < 0 {
		return fmt.Errorf("HOMER_SUMMARY_MIN_CHARS must be >= 0")
	}
	if strings.TrimSpace(c.SummaryLanguage) == "" {
		return fmt.Errorf("HOMER_SUMMARY_LANGUAGE is required")
	}
	return nil
}
