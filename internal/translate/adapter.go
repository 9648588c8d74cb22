package translate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"horse.fit/homer/internal/capability"
	"horse.fit/homer/internal/language"
)

// Adapter wraps the translator capability behind usability checks and the
// per-pair handle cache. Handles are memoized; results are not.
type Adapter struct {
	guard  *capability.Guard
	logger zerolog.Logger
	status capability.Status

	mu    sync.Mutex
	cache *HandleCache
}

func NewAdapter(guard *capability.Guard, logger zerolog.Logger) *Adapter {
	return &Adapter{
		guard:  guard,
		logger: logger.With().Str("adapter", "translator").Logger(),
	}
}

// Translate translates text from sourceLang to targetLang. All failure modes
// surface as a typed error carrying a human-readable reason; callers must
// leave any previously stored translation untouched on failure.
func (a *Adapter) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if a == nil {
		return "", fmt.Errorf("translation adapter is nil")
	}

	a.status.Begin()
	translated, err := a.translate(ctx, text, sourceLang, targetLang)
	a.status.End(err)
	return translated, err
}

func (a *Adapter) translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text is required")
	}

	source := language.NormalizeCode(sourceLang)
	target := language.NormalizeCode(targetLang)
	if source == "" || target == "" {
		return "", fmt.Errorf("source and target languages are required")
	}

	verdict, err := a.guard.TranslatorUsability(ctx, source, target)
	if err != nil {
		return "", fmt.Errorf("translator usability: %w", err)
	}
	if verdict == capability.AvailabilityNo {
		return "", &capability.PairError{SourceLang: source, TargetLang: target}
	}

	handle, err := a.handleFor(ctx, source, target)
	if err != nil {
		return "", err
	}

	translated, err := handle.Translate(ctx, text)
	if err != nil {
		return "", &capability.OperationError{Capability: "translator", Err: err}
	}

	a.logger.Debug().
		Str("source_lang", source).
		Str("target_lang", target).
		Int("text_len", len(text)).
		Msg("translated message text")
	return translated, nil
}

func (a *Adapter) handleFor(ctx context.Context, source, target string) (capability.TranslatorHandle, error) {
	a.mu.Lock()
	if a.cache == nil {
		translator, ok := a.guard.Translator()
		if !ok {
			a.mu.Unlock()
			return nil, fmt.Errorf("translator: %w", capability.ErrUnavailable)
		}
		a.cache = NewHandleCache(translator, a.logProgress)
	}
	cache := a.cache
	a.mu.Unlock()

	return cache.GetOrCreate(ctx, source, target)
}

// Cache exposes the pair cache, creating it on first use. Absent capability
// yields a nil cache.
func (a *Adapter) Cache() *HandleCache {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cache
}

// Loading reports whether a translation is in flight.
func (a *Adapter) Loading() bool {
	return a.status.Loading()
}

// LastError returns the most recent translation failure, or nil.
func (a *Adapter) LastError() error {
	return a.status.LastError()
}

func (a *Adapter) logProgress(p capability.Progress) {
	a.logger.Debug().
		Uint64("loaded", p.Loaded).
		Uint64("total", p.Total).
		Msg("translator model download progress")
}
