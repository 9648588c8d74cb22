package detect

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"horse.fit/homer/internal/capability"
	"horse.fit/homer/internal/language"
)

// Detection is the highest-confidence language detection result for one text.
type Detection struct {
	LanguageCode string  `json:"language_code"`
	LanguageName string  `json:"language_name"`
	Confidence   float64 `json:"confidence"`
}

// Adapter wraps the language detector capability. A single shared handle is
// provisioned lazily on first use; failures surface as absence, never as an
// unhandled error to callers.
type Adapter struct {
	guard  *capability.Guard
	logger zerolog.Logger
	status capability.Status

	mu     sync.Mutex
	handle capability.DetectorHandle
}

func NewAdapter(guard *capability.Guard, logger zerolog.Logger) *Adapter {
	return &Adapter{
		guard:  guard,
		logger: logger.With().Str("adapter", "language_detector").Logger(),
	}
}

// Detect returns the top detection candidate for text, or nil when the text
// is blank, the capability is unavailable, or detection failed. Failures are
// recorded on the adapter status for UI feedback.
func (a *Adapter) Detect(ctx context.Context, text string) *Detection {
	if a == nil {
		return nil
	}

	sample := strings.TrimSpace(text)
	if sample == "" {
		return nil
	}

	a.status.Begin()
	result, err := a.detect(ctx, sample)
	a.status.End(err)
	if err != nil {
		a.logger.Warn().Err(err).Msg("language detection failed")
		return nil
	}
	return result
}

func (a *Adapter) detect(ctx context.Context, sample string) (*Detection, error) {
	verdict, err := a.guard.DetectorUsability(ctx)
	if err != nil {
		return nil, err
	}
	if verdict == capability.AvailabilityNo {
		return nil, fmt.Errorf("language detector: %w", capability.ErrUnavailable)
	}

	handle, err := a.sharedHandle(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := handle.Detect(ctx, sample)
	if err != nil {
		return nil, &capability.OperationError{Capability: "language detector", Err: err}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("language detector returned no candidates")
	}

	// Candidates arrive pre-sorted by descending confidence.
	top := candidates[0]
	return &Detection{
		LanguageCode: top.LanguageCode,
		LanguageName: language.Name(top.LanguageCode),
		Confidence:   top.Confidence,
	}, nil
}

func (a *Adapter) sharedHandle(ctx context.Context) (capability.DetectorHandle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.handle != nil {
		return a.handle, nil
	}

	detector, ok := a.guard.Detector()
	if !ok {
		return nil, fmt.Errorf("language detector: %w", capability.ErrUnavailable)
	}

	handle, err := detector.Create(ctx, a.logProgress)
	if err != nil {
		return nil, &capability.ProvisionError{Capability: "language detector", Err: err}
	}
	if err := handle.Ready(ctx); err != nil {
		return nil, &capability.ProvisionError{Capability: "language detector", Err: err}
	}

	a.handle = handle
	return handle, nil
}

// Loading reports whether a detection is in flight.
func (a *Adapter) Loading() bool {
	return a.status.Loading()
}

// LastError returns the most recent detection failure, or nil.
func (a *Adapter) LastError() error {
	return a.status.LastError()
}

func (a *Adapter) logProgress(p capability.Progress) {
	a.logger.Debug().
		Uint64("loaded", p.Loaded).
		Uint64("total", p.Total).
		Msg("detector model download progress")
}
