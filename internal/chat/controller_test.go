package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/homer/internal/capability"
	"horse.fit/homer/internal/detect"
	"horse.fit/homer/internal/summarize"
	"horse.fit/homer/internal/translate"
)

type stubDetectorHandle struct {
	candidates []capability.Candidate
}

func (h *stubDetectorHandle) Ready(_ context.Context) error { return nil }

func (h *stubDetectorHandle) Detect(_ context.Context, _ string) ([]capability.Candidate, error) {
	return h.candidates, nil
}

type stubDetectorCap struct {
	candidates []capability.Candidate
}

func (c *stubDetectorCap) Usability(_ context.Context) (capability.Availability, error) {
	return capability.AvailabilityYes, nil
}

func (c *stubDetectorCap) Create(_ context.Context, _ capability.ProgressFunc) (capability.DetectorHandle, error) {
	return &stubDetectorHandle{candidates: c.candidates}, nil
}

type stubTranslatorHandle struct {
	result string
}

func (h *stubTranslatorHandle) Ready(_ context.Context) error { return nil }

func (h *stubTranslatorHandle) Translate(_ context.Context, _ string) (string, error) {
	return h.result, nil
}

type stubTranslatorCap struct {
	results map[string]string
}

func (c *stubTranslatorCap) Usability(_ context.Context, _, _ string) (capability.Availability, error) {
	return capability.AvailabilityYes, nil
}

func (c *stubTranslatorCap) Create(_ context.Context, sourceLang, targetLang string, _ capability.ProgressFunc) (capability.TranslatorHandle, error) {
	return &stubTranslatorHandle{result: c.results[sourceLang+">"+targetLang]}, nil
}

type stubSummarizerHandle struct {
	summary string
}

func (h *stubSummarizerHandle) Ready(_ context.Context) error { return nil }

func (h *stubSummarizerHandle) Summarize(_ context.Context, _ string) (string, error) {
	return h.summary, nil
}

type stubSummarizerCap struct {
	summary string
}

func (c *stubSummarizerCap) Usability(_ context.Context) (capability.Availability, error) {
	return capability.AvailabilityYes, nil
}

func (c *stubSummarizerCap) Create(_ context.Context, _ capability.ProgressFunc) (capability.SummarizerHandle, error) {
	return &stubSummarizerHandle{summary: c.summary}, nil
}

type stubProvider struct {
	detector   capability.DetectorCapability
	translator capability.TranslatorCapability
	summarizer capability.SummarizerCapability
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Detector() (capability.DetectorCapability, bool) {
	return p.detector, p.detector != nil
}

func (p *stubProvider) Translator() (capability.TranslatorCapability, bool) {
	return p.translator, p.translator != nil
}

func (p *stubProvider) Summarizer() (capability.SummarizerCapability, bool) {
	return p.summarizer, p.summarizer != nil
}

func newTestController(provider capability.Provider) *Controller {
	guard := capability.NewGuard(provider)
	logger := zerolog.Nop()
	return NewController(
		detect.NewAdapter(guard, logger),
		translate.NewAdapter(guard, logger),
		summarize.NewAdapter(guard, logger),
		logger,
		Options{},
	)
}

func frenchProvider() *stubProvider {
	return &stubProvider{
		detector: &stubDetectorCap{candidates: []capability.Candidate{
			{LanguageCode: "fr", Confidence: 0.97},
		}},
		translator: &stubTranslatorCap{results: map[string]string{
			"fr>en": "Hello world",
		}},
	}
}

func TestSubmitAppendsDetectedMessage(t *testing.T) {
	t.Parallel()

	controller := newTestController(frenchProvider())

	msg, err := controller.Submit(context.Background(), "  Bonjour le monde  ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg.ID == "" {
		t.Fatalf("expected a non-empty id")
	}
	if msg.Text != "Bonjour le monde" {
		t.Fatalf("expected trimmed text, got %q", msg.Text)
	}
	if msg.Detection == nil || msg.Detection.LanguageName != "French" || msg.Detection.Confidence != 0.97 {
		t.Fatalf("unexpected detection: %+v", msg.Detection)
	}
	if len(controller.Messages()) != 1 {
		t.Fatalf("expected exactly one appended message")
	}
}

func TestSubmitAssignsDistinctIDs(t *testing.T) {
	t.Parallel()

	controller := newTestController(frenchProvider())

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		msg, err := controller.Submit(context.Background(), "Bonjour le monde")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if seen[msg.ID] {
			t.Fatalf("duplicate id: %q", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestSubmitBlankInputIsNoOp(t *testing.T) {
	t.Parallel()

	controller := newTestController(frenchProvider())

	for _, input := range []string{"", "   ", "\n\t "} {
		if _, err := controller.Submit(context.Background(), input); !errors.Is(err, ErrBlankMessage) {
			t.Fatalf("input %q: expected ErrBlankMessage, got %v", input, err)
		}
	}
	if len(controller.Messages()) != 0 {
		t.Fatalf("blank submissions must not mutate the store")
	}
}

func TestSubmitDetectionFailureLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	// No detector capability at all.
	controller := newTestController(&stubProvider{})

	_, err := controller.Submit(context.Background(), "Bonjour le monde")
	if !errors.Is(err, ErrDetectionFailed) {
		t.Fatalf("expected ErrDetectionFailed, got %v", err)
	}
	if !errors.Is(err, capability.ErrUnavailable) {
		t.Fatalf("expected the unavailability cause to be wrapped, got %v", err)
	}
	if len(controller.Messages()) != 0 {
		t.Fatalf("failed detection must not append a message")
	}
}

func TestRequestTranslationPatchesPairAtomically(t *testing.T) {
	t.Parallel()

	controller := newTestController(frenchProvider())

	msg, err := controller.Submit(context.Background(), "Bonjour le monde")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	patched, err := controller.RequestTranslation(context.Background(), msg.ID, "en")
	if err != nil {
		t.Fatalf("request translation: %v", err)
	}
	if patched.Translation == nil {
		t.Fatalf("expected a translation patch")
	}
	if patched.Translation.Text != "Hello world" || patched.Translation.TargetLanguageName != "English" {
		t.Fatalf("unexpected translation pair: %+v", patched.Translation)
	}
}

func TestRequestTranslationUnknownMessage(t *testing.T) {
	t.Parallel()

	controller := newTestController(frenchProvider())
	if _, err := controller.RequestTranslation(context.Background(), "missing", "en"); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestRequestTranslationFailureLeavesMessageUntouched(t *testing.T) {
	t.Parallel()

	provider := frenchProvider()
	provider.translator = nil
	controller := newTestController(provider)

	msg, err := controller.Submit(context.Background(), "Bonjour le monde")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := controller.RequestTranslation(context.Background(), msg.ID, "en"); !errors.Is(err, capability.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	current, _ := controller.Message(msg.ID)
	if current.Translation != nil {
		t.Fatalf("failed translation must not patch the message")
	}
}

func TestRequestSummaryUnavailableLeavesMessageUnchanged(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		detector: &stubDetectorCap{candidates: []capability.Candidate{
			{LanguageCode: "en", Confidence: 0.92},
		}},
	}
	controller := newTestController(provider)

	longText := strings.Repeat("All work and no play makes for dull prose. ", 5)
	msg, err := controller.Submit(context.Background(), longText)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	after, err := controller.RequestSummary(context.Background(), msg.ID)
	if err != nil {
		t.Fatalf("request summary: %v", err)
	}
	if after.Summary != nil {
		t.Fatalf("unavailable summarizer must not patch the message")
	}
	if !errors.Is(controller.Summarizer().LastError(), capability.ErrUnavailable) {
		t.Fatalf("expected recorded ErrUnavailable, got %v", controller.Summarizer().LastError())
	}
}

func TestRequestSummaryRepeatedCallsStayConsistent(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		detector: &stubDetectorCap{candidates: []capability.Candidate{
			{LanguageCode: "en", Confidence: 0.92},
		}},
		summarizer: &stubSummarizerCap{summary: "short version"},
	}
	controller := newTestController(provider)

	msg, err := controller.Submit(context.Background(), strings.Repeat("long text ", 20))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	for i := 0; i < 2; i++ {
		after, err := controller.RequestSummary(context.Background(), msg.ID)
		if err != nil {
			t.Fatalf("request summary %d: %v", i, err)
		}
		if after.Summary == nil || *after.Summary != "short version" {
			t.Fatalf("request summary %d: unexpected summary %+v", i, after.Summary)
		}
	}
}

func TestCanSummarizePolicy(t *testing.T) {
	t.Parallel()

	controller := newTestController(frenchProvider())

	long := strings.Repeat("x", DefaultSummaryMinChars+1)
	short := "too short"
	summaryText := "done"

	english := &detect.Detection{LanguageCode: "en", LanguageName: "English", Confidence: 0.9}
	french := &detect.Detection{LanguageCode: "fr", LanguageName: "French", Confidence: 0.9}

	cases := []struct {
		name string
		msg  Message
		want bool
	}{
		{"long english", Message{Text: long, Detection: english}, true},
		{"short english", Message{Text: short, Detection: english}, false},
		{"long french", Message{Text: long, Detection: french}, false},
		{"no detection", Message{Text: long}, false},
		{"already summarized", Message{Text: long, Detection: english, Summary: &summaryText}, false},
	}
	for _, tc := range cases {
		if got := controller.CanSummarize(tc.msg); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}
