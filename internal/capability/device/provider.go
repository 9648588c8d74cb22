// Package device implements the on-device capability provider: language
// detection runs in-process, translation and summarization call a local
// OpenAI-compatible endpoint. Capabilities without configuration are absent.
package device

import (
	"os"
	"strings"

	"horse.fit/homer/internal/capability"
)

const (
	// DefaultEndpoint points to a local OpenAI-compatible endpoint.
	DefaultEndpoint = "http://127.0.0.1:8845/v1"
	// DefaultModel is the default on-device model name.
	DefaultModel = "tencent/HY-MT1.5-7B"
)

// Config selects which capabilities the provider offers. An empty endpoint
// disables the corresponding capability entirely.
type Config struct {
	TranslatorEndpoint string
	TranslatorModel    string
	SummarizerEndpoint string
	SummarizerModel    string
}

// ConfigFromEnv builds a device config from env vars.
//   - HOMER_TRANSLATOR_ENDPOINT / HOMER_TRANSLATOR_MODEL
//   - HOMER_SUMMARIZER_ENDPOINT / HOMER_SUMMARIZER_MODEL
func ConfigFromEnv() Config {
	return Config{
		TranslatorEndpoint: strings.TrimSpace(os.Getenv("HOMER_TRANSLATOR_ENDPOINT")),
		TranslatorModel:    strings.TrimSpace(os.Getenv("HOMER_TRANSLATOR_MODEL")),
		SummarizerEndpoint: strings.TrimSpace(os.Getenv("HOMER_SUMMARIZER_ENDPOINT")),
		SummarizerModel:    strings.TrimSpace(os.Getenv("HOMER_SUMMARIZER_MODEL")),
	}
}

// Provider is the built-in capability set for this device.
type Provider struct {
	detector   *linguaDetector
	translator *localTranslator
	summarizer *localSummarizer
}

func NewProvider(cfg Config) *Provider {
	p := &Provider{detector: newLinguaDetector()}

	if endpoint := strings.TrimSpace(cfg.TranslatorEndpoint); endpoint != "" {
		p.translator = newLocalTranslator(endpoint, cfg.TranslatorModel)
	}
	if endpoint := strings.TrimSpace(cfg.SummarizerEndpoint); endpoint != "" {
		p.summarizer = newLocalSummarizer(endpoint, cfg.SummarizerModel)
	}
	return p
}

func (p *Provider) Name() string {
	return "device"
}

func (p *Provider) Detector() (capability.DetectorCapability, bool) {
	if p == nil || p.detector == nil {
		return nil, false
	}
	return p.detector, true
}

func (p *Provider) Translator() (capability.TranslatorCapability, bool) {
	if p == nil || p.translator == nil {
		return nil, false
	}
	return p.translator, true
}

func (p *Provider) Summarizer() (capability.SummarizerCapability, bool) {
	if p == nil || p.summarizer == nil {
		return nil, false
	}
	return p.summarizer, true
}
