package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/homer/internal/capability"
)

// Adapter wraps the summarizer capability. Summarizer configuration is
// uniform, so a fresh handle is provisioned per call instead of being cached;
// the repeated provisioning cost is an accepted simplification.
type Adapter struct {
	guard  *capability.Guard
	logger zerolog.Logger
	status capability.Status
}

func NewAdapter(guard *capability.Guard, logger zerolog.Logger) *Adapter {
	return &Adapter{
		guard:  guard,
		logger: logger.With().Str("adapter", "summarizer").Logger(),
	}
}

// Summarize returns a summary of text, or absence (empty string, false) when
// the capability is unavailable or the call failed. Failures are recorded on
// the adapter status and never propagate to callers.
func (a *Adapter) Summarize(ctx context.Context, text string) (string, bool) {
	if a == nil {
		return "", false
	}

	a.status.Begin()
	summary, err := a.summarize(ctx, text)
	a.status.End(err)
	if err != nil {
		a.logger.Warn().Err(err).Msg("summarization failed")
		return "", false
	}
	return summary, true
}

func (a *Adapter) summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text is required")
	}

	verdict, err := a.guard.SummarizerUsability(ctx)
	if err != nil {
		return "", err
	}
	if verdict == capability.AvailabilityNo {
		return "", fmt.Errorf("summarizer: %w", capability.ErrUnavailable)
	}

	summarizer, ok := a.guard.Summarizer()
	if !ok {
		return "", fmt.Errorf("summarizer: %w", capability.ErrUnavailable)
	}

	handle, err := summarizer.Create(ctx, a.logProgress)
	if err != nil {
		return "", &capability.ProvisionError{Capability: "summarizer", Err: err}
	}
	if err := handle.Ready(ctx); err != nil {
		return "", &capability.ProvisionError{Capability: "summarizer", Err: err}
	}

	summary, err := handle.Summarize(ctx, text)
	if err != nil {
		return "", &capability.OperationError{Capability: "summarizer", Err: err}
	}
	if strings.TrimSpace(summary) == "" {
		return "", fmt.Errorf("summarizer returned an empty summary")
	}
	return summary, nil
}

// Loading reports whether a summarization is in flight.
func (a *Adapter) Loading() bool {
	return a.status.Loading()
}

// LastError returns the most recent summarization failure, or nil.
func (a *Adapter) LastError() error {
	return a.status.LastError()
}

func (a *Adapter) logProgress(p capability.Progress) {
	a.logger.Debug().
		Uint64("loaded", p.Loaded).
		Uint64("total", p.Total).
		Msg("summarizer model download progress")
}
