package device

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"

	"horse.fit/homer/internal/capability"
)

// minSampleLetters is the smallest letter count lingua gives a usable signal
// for.
const minSampleLetters = 1

type linguaDetector struct{}

func newLinguaDetector() *linguaDetector {
	return &linguaDetector{}
}

func (d *linguaDetector) Usability(_ context.Context) (capability.Availability, error) {
	// Detection runs fully in-process; it is always usable once the language
	// models are loaded.
	return capability.AvailabilityYes, nil
}

func (d *linguaDetector) Create(_ context.Context, _ capability.ProgressFunc) (capability.DetectorHandle, error) {
	return &linguaHandle{}, nil
}

// linguaHandle loads the lingua language models on Ready. Loading is the
// expensive part of provisioning, which is why callers gate on readiness.
type linguaHandle struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func (h *linguaHandle) Ready(_ context.Context) error {
	h.once.Do(func() {
		h.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithPreloadedLanguageModels().
			Build()
	})
	return nil
}

func (h *linguaHandle) Detect(ctx context.Context, text string) ([]capability.Candidate, error) {
	if h == nil || h.detector == nil {
		return nil, fmt.Errorf("detector handle is not ready")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sample := strings.TrimSpace(text)
	letters := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < minSampleLetters {
		return nil, nil
	}

	values := h.detector.ComputeLanguageConfidenceValues(sample)
	candidates := make([]capability.Candidate, 0, len(values))
	for _, value := range values {
		code := strings.ToLower(value.Language().IsoCode639_1().String())
		if len(code) != 2 {
			continue
		}
		candidates = append(candidates, capability.Candidate{
			LanguageCode: code,
			Confidence:   value.Value(),
		})
	}
	return candidates, nil
}
