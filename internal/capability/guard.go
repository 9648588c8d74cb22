package capability

import (
	"context"
	"fmt"
)

// Guard answers whether a capability is present and usable before any handle
// is created. Verdicts are never cached because capability state can change
// over a session.
type Guard struct {
	provider Provider
}

func NewGuard(provider Provider) *Guard {
	return &Guard{provider: provider}
}

// DetectorUsability reports the detector verdict, or ErrUnavailable when the
// provider or the detector capability is absent.
func (g *Guard) DetectorUsability(ctx context.Context) (Availability, error) {
	if g == nil || g.provider == nil {
		return AvailabilityNo, fmt.Errorf("language detector: %w", ErrUnavailable)
	}
	detector, ok := g.provider.Detector()
	if !ok {
		return AvailabilityNo, fmt.Errorf("language detector: %w", ErrUnavailable)
	}
	return detector.Usability(ctx)
}

// TranslatorUsability reports the graded verdict for one (source, target)
// language pair, or ErrUnavailable when the capability is absent.
func (g *Guard) TranslatorUsability(ctx context.Context, sourceLang, targetLang string) (Availability, error) {
	if g == nil || g.provider == nil {
		return AvailabilityNo, fmt.Errorf("translator: %w", ErrUnavailable)
	}
	translator, ok := g.provider.Translator()
	if !ok {
		return AvailabilityNo, fmt.Errorf("translator: %w", ErrUnavailable)
	}
	return translator.Usability(ctx, sourceLang, targetLang)
}

// SummarizerUsability reports the summarizer verdict, or ErrUnavailable when
// the capability is absent.
func (g *Guard) SummarizerUsability(ctx context.Context) (Availability, error) {
	if g == nil || g.provider == nil {
		return AvailabilityNo, fmt.Errorf("summarizer: %w", ErrUnavailable)
	}
	summarizer, ok := g.provider.Summarizer()
	if !ok {
		return AvailabilityNo, fmt.Errorf("summarizer: %w", ErrUnavailable)
	}
	return summarizer.Usability(ctx)
}

// Detector returns the detector capability when present.
func (g *Guard) Detector() (DetectorCapability, bool) {
	if g == nil || g.provider == nil {
		return nil, false
	}
	return g.provider.Detector()
}

// Translator returns the translator capability when present.
func (g *Guard) Translator() (TranslatorCapability, bool) {
	if g == nil || g.provider == nil {
		return nil, false
	}
	return g.provider.Translator()
}

// Summarizer returns the summarizer capability when present.
func (g *Guard) Summarizer() (SummarizerCapability, bool) {
	if g == nil || g.provider == nil {
		return nil, false
	}
	return g.provider.Summarizer()
}
