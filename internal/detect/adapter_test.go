package detect

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/homer/internal/capability"
)

type stubDetectorHandle struct {
	candidates []capability.Candidate
	detectErr  error
	readyErr   error
}

func (h *stubDetectorHandle) Ready(_ context.Context) error {
	return h.readyErr
}

func (h *stubDetectorHandle) Detect(_ context.Context, _ string) ([]capability.Candidate, error) {
	if h.detectErr != nil {
		return nil, h.detectErr
	}
	return h.candidates, nil
}

type stubDetectorCap struct {
	handle      *stubDetectorHandle
	createCalls int32
	createErr   error
}

func (c *stubDetectorCap) Usability(_ context.Context) (capability.Availability, error) {
	return capability.AvailabilityYes, nil
}

func (c *stubDetectorCap) Create(_ context.Context, _ capability.ProgressFunc) (capability.DetectorHandle, error) {
	atomic.AddInt32(&c.createCalls, 1)
	if c.createErr != nil {
		return nil, c.createErr
	}
	return c.handle, nil
}

type stubProvider struct {
	detector capability.DetectorCapability
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Detector() (capability.DetectorCapability, bool) {
	return p.detector, p.detector != nil
}

func (p *stubProvider) Translator() (capability.TranslatorCapability, bool) { return nil, false }

func (p *stubProvider) Summarizer() (capability.SummarizerCapability, bool) { return nil, false }

func newTestAdapter(detector capability.DetectorCapability) *Adapter {
	return NewAdapter(capability.NewGuard(&stubProvider{detector: detector}), zerolog.Nop())
}

func TestDetectBlankInputSkipsProvider(t *testing.T) {
	t.Parallel()

	stub := &stubDetectorCap{handle: &stubDetectorHandle{}}
	adapter := newTestAdapter(stub)

	if got := adapter.Detect(context.Background(), "   "); got != nil {
		t.Fatalf("expected absent result for blank input, got %+v", got)
	}
	if calls := atomic.LoadInt32(&stub.createCalls); calls != 0 {
		t.Fatalf("blank input must not touch the provider, got %d calls", calls)
	}
}

func TestDetectUnavailableCapabilityIsAbsence(t *testing.T) {
	t.Parallel()

	adapter := newTestAdapter(nil)

	if got := adapter.Detect(context.Background(), "Bonjour le monde"); got != nil {
		t.Fatalf("expected absent result, got %+v", got)
	}
	if !errors.Is(adapter.LastError(), capability.ErrUnavailable) {
		t.Fatalf("expected recorded ErrUnavailable, got %v", adapter.LastError())
	}
}

func TestDetectReturnsTopCandidateWithDisplayName(t *testing.T) {
	t.Parallel()

	stub := &stubDetectorCap{handle: &stubDetectorHandle{
		candidates: []capability.Candidate{
			{LanguageCode: "fr", Confidence: 0.97},
			{LanguageCode: "es", Confidence: 0.02},
		},
	}}
	adapter := newTestAdapter(stub)

	got := adapter.Detect(context.Background(), "Bonjour le monde")
	if got == nil {
		t.Fatalf("expected detection result")
	}
	if got.LanguageCode != "fr" || got.LanguageName != "French" {
		t.Fatalf("unexpected detection: %+v", got)
	}
	if got.Confidence != 0.97 {
		t.Fatalf("unexpected confidence: %v", got.Confidence)
	}
}

func TestDetectSharesOneHandleAcrossCalls(t *testing.T) {
	t.Parallel()

	stub := &stubDetectorCap{handle: &stubDetectorHandle{
		candidates: []capability.Candidate{{LanguageCode: "en", Confidence: 0.9}},
	}}
	adapter := newTestAdapter(stub)

	for i := 0; i < 3; i++ {
		if got := adapter.Detect(context.Background(), "Hello world"); got == nil {
			t.Fatalf("call %d: expected detection result", i)
		}
	}
	if calls := atomic.LoadInt32(&stub.createCalls); calls != 1 {
		t.Fatalf("expected a single shared handle, got %d provisioning calls", calls)
	}
}

func TestDetectProvisioningFailureRetriesNextCall(t *testing.T) {
	t.Parallel()

	stub := &stubDetectorCap{
		handle:    &stubDetectorHandle{candidates: []capability.Candidate{{LanguageCode: "en", Confidence: 0.9}}},
		createErr: errors.New("download failed"),
	}
	adapter := newTestAdapter(stub)

	if got := adapter.Detect(context.Background(), "Hello world"); got != nil {
		t.Fatalf("expected absence on provisioning failure, got %+v", got)
	}
	var provisionErr *capability.ProvisionError
	if !errors.As(adapter.LastError(), &provisionErr) {
		t.Fatalf("expected recorded ProvisionError, got %v", adapter.LastError())
	}

	stub.createErr = nil
	if got := adapter.Detect(context.Background(), "Hello world"); got == nil {
		t.Fatalf("expected retry to provision a fresh handle")
	}
	if calls := atomic.LoadInt32(&stub.createCalls); calls != 2 {
		t.Fatalf("expected two provisioning attempts, got %d", calls)
	}
}

func TestDetectOperationFailureIsAbsencePlusRecordedError(t *testing.T) {
	t.Parallel()

	stub := &stubDetectorCap{handle: &stubDetectorHandle{detectErr: errors.New("model crashed")}}
	adapter := newTestAdapter(stub)

	if got := adapter.Detect(context.Background(), "Hello world"); got != nil {
		t.Fatalf("expected absence on operation failure, got %+v", got)
	}
	var opErr *capability.OperationError
	if !errors.As(adapter.LastError(), &opErr) {
		t.Fatalf("expected recorded OperationError, got %v", adapter.LastError())
	}
}
