package translate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/homer/internal/capability"
)

type pairVerdictCap struct {
	stubTranslatorCap
	verdicts map[string]capability.Availability
}

func (c *pairVerdictCap) Usability(_ context.Context, sourceLang, targetLang string) (capability.Availability, error) {
	if verdict, ok := c.verdicts[sourceLang+">"+targetLang]; ok {
		return verdict, nil
	}
	return capability.AvailabilityYes, nil
}

type stubProvider struct {
	translator capability.TranslatorCapability
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Detector() (capability.DetectorCapability, bool) { return nil, false }

func (p *stubProvider) Translator() (capability.TranslatorCapability, bool) {
	return p.translator, p.translator != nil
}

func (p *stubProvider) Summarizer() (capability.SummarizerCapability, bool) { return nil, false }

func TestTranslateUnsupportedPairFailsFast(t *testing.T) {
	t.Parallel()

	stub := &pairVerdictCap{verdicts: map[string]capability.Availability{
		"en>fr": capability.AvailabilityNo,
	}}
	adapter := NewAdapter(capability.NewGuard(&stubProvider{translator: stub}), zerolog.Nop())

	_, err := adapter.Translate(context.Background(), "Hello world", "en", "fr")
	var pairErr *capability.PairError
	if !errors.As(err, &pairErr) {
		t.Fatalf("expected PairError, got %v", err)
	}
	if pairErr.SourceLang != "en" || pairErr.TargetLang != "fr" {
		t.Fatalf("unexpected pair in error: %+v", pairErr)
	}
	if calls := atomic.LoadInt32(&stub.createCalls); calls != 0 {
		t.Fatalf("unsupported pair must not provision a handle, got %d calls", calls)
	}
	if adapter.LastError() == nil {
		t.Fatalf("expected adapter to record the failure")
	}
}

func TestTranslateAbsentCapability(t *testing.T) {
	t.Parallel()

	adapter := NewAdapter(capability.NewGuard(&stubProvider{}), zerolog.Nop())

	_, err := adapter.Translate(context.Background(), "Hello world", "en", "fr")
	if !errors.Is(err, capability.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestTranslateReusesCachedHandleAcrossCalls(t *testing.T) {
	t.Parallel()

	stub := &pairVerdictCap{}
	adapter := NewAdapter(capability.NewGuard(&stubProvider{translator: stub}), zerolog.Nop())

	first, err := adapter.Translate(context.Background(), "Hello world", "en", "fr")
	if err != nil {
		t.Fatalf("first translate: %v", err)
	}
	if first != "[en>fr] Hello world" {
		t.Fatalf("unexpected translation: %q", first)
	}

	if _, err := adapter.Translate(context.Background(), "Goodbye", "en", "fr"); err != nil {
		t.Fatalf("second translate: %v", err)
	}
	if calls := atomic.LoadInt32(&stub.createCalls); calls != 1 {
		t.Fatalf("expected one provisioning per pair, got %d", calls)
	}
	if adapter.LastError() != nil {
		t.Fatalf("unexpected recorded error: %v", adapter.LastError())
	}
}

func TestTranslateNormalizesLanguageCodes(t *testing.T) {
	t.Parallel()

	stub := &pairVerdictCap{}
	adapter := NewAdapter(capability.NewGuard(&stubProvider{translator: stub}), zerolog.Nop())

	got, err := adapter.Translate(context.Background(), "Hello", " EN-us ", "FR")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "[en>fr] Hello" {
		t.Fatalf("expected normalized pair in handle, got %q", got)
	}
}
