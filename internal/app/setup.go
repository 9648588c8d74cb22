package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"horse.fit/homer/internal/capability"
	"horse.fit/homer/internal/capability/device"
	"horse.fit/homer/internal/chat"
	"horse.fit/homer/internal/cli"
	"horse.fit/homer/internal/config"
	"horse.fit/homer/internal/detect"
	"horse.fit/homer/internal/logging"
	"horse.fit/homer/internal/summarize"
	"horse.fit/homer/internal/translate"
)

type runtime struct {
	cfg        *config.Config
	logger     zerolog.Logger
	guard      *capability.Guard
	controller *chat.Controller
}

// newRuntime wires the capability provider, guard, adapters, and controller
// from environment configuration.
func newRuntime(envLoader *cli.EnvLoader) (*runtime, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	provider := device.NewProvider(device.Config{
		TranslatorEndpoint: cfg.TranslatorEndpoint,
		TranslatorModel:    cfg.TranslatorModel,
		SummarizerEndpoint: cfg.SummarizerEndpoint,
		SummarizerModel:    cfg.SummarizerModel,
	})
	guard := capability.NewGuard(provider)

	controller := chat.NewController(
		detect.NewAdapter(guard, logger),
		translate.NewAdapter(guard, logger),
		summarize.NewAdapter(guard, logger),
		logger,
		chat.Options{
			SummaryMinChars: cfg.SummaryMinChars,
			SummaryLanguage: cfg.SummaryLanguage,
		},
	)

	return &runtime{
		cfg:        cfg,
		logger:     logger,
		guard:      guard,
		controller: controller,
	}, nil
}
