package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"horse.fit/homer/internal/detect"
	"horse.fit/homer/internal/language"
	"horse.fit/homer/internal/summarize"
	"horse.fit/homer/internal/translate"
)

const (
	// DefaultSummaryMinChars is the text length above which a message is
	// offered for summarization.
	DefaultSummaryMinChars = 150
	// DefaultSummaryLanguage restricts summarization to one source language.
	DefaultSummaryLanguage = "en"
)

var (
	ErrBlankMessage    = errors.New("message text is blank")
	ErrDetectionFailed = errors.New("language detection failed")
	ErrMessageNotFound = errors.New("message not found")
)

// Options tunes controller policy. Zero values fall back to defaults.
type Options struct {
	SummaryMinChars int
	SummaryLanguage string
}

// Controller orchestrates the per-message pipeline: submit runs detection and
// appends, translation and summary requests patch existing messages. Requests
// for different messages, or different annotations of the same message, may
// run concurrently.
type Controller struct {
	store      *Store
	detector   *detect.Adapter
	translator *translate.Adapter
	summarizer *summarize.Adapter
	logger     zerolog.Logger

	summaryMinChars int
	summaryLanguage string
}

func NewController(
	detector *detect.Adapter,
	translator *translate.Adapter,
	summarizer *summarize.Adapter,
	logger zerolog.Logger,
	opts Options,
) *Controller {
	minChars := opts.SummaryMinChars
	if minChars <= 0 {
		minChars = DefaultSummaryMinChars
	}
	summaryLang := language.NormalizeCode(opts.SummaryLanguage)
	if summaryLang == "" {
		summaryLang = DefaultSummaryLanguage
	}

	return &Controller{
		store:           NewStore(),
		detector:        detector,
		translator:      translator,
		summarizer:      summarizer,
		logger:          logger.With().Str("component", "conversation").Logger(),
		summaryMinChars: minChars,
		summaryLanguage: summaryLang,
	}
}

// Submit trims and detects the language of text, then appends a new message.
// Blank input and detection failure both leave the store unchanged so the
// caller can let the user retry.
func (c *Controller) Submit(ctx context.Context, text string) (Message, error) {
	if c == nil {
		return Message{}, fmt.Errorf("controller is nil")
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, ErrBlankMessage
	}

	detection := c.detector.Detect(ctx, trimmed)
	if detection == nil {
		if err := c.detector.LastError(); err != nil {
			return Message{}, fmt.Errorf("%w: %w", ErrDetectionFailed, err)
		}
		return Message{}, ErrDetectionFailed
	}

	msg := Message{
		ID:        uuid.NewString(),
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
		Detection: detection,
	}
	c.store.Append(msg)

	c.logger.Info().
		Str("message_id", msg.ID).
		Str("language", detection.LanguageCode).
		Float64("confidence", detection.Confidence).
		Msg("message submitted")
	return msg, nil
}

// RequestTranslation translates one message into targetLang and patches the
// translation pair atomically. A message without a detected source language
// is a no-op. On failure the message keeps its previous translation.
func (c *Controller) RequestTranslation(ctx context.Context, messageID, targetLang string) (Message, error) {
	if c == nil {
		return Message{}, fmt.Errorf("controller is nil")
	}

	msg, ok := c.store.Get(messageID)
	if !ok {
		return Message{}, ErrMessageNotFound
	}
	if msg.Detection == nil {
		// Cannot translate without a known source language.
		return msg, nil
	}

	seq, ok := c.store.ClaimTranslationSeq(messageID)
	if !ok {
		return Message{}, ErrMessageNotFound
	}

	target := language.NormalizeCode(targetLang)
	translated, err := c.translator.Translate(ctx, msg.Text, msg.Detection.LanguageCode, target)
	if err != nil {
		return msg, err
	}

	patched, applied := c.store.SetTranslation(messageID, Translation{
		Text:               translated,
		TargetLanguageCode: target,
		TargetLanguageName: language.Name(target),
	}, seq)
	if !applied {
		c.logger.Debug().
			Str("message_id", messageID).
			Str("target_lang", target).
			Msg("discarded stale translation result")
	}
	return patched, nil
}

// RequestSummary summarizes one message and patches its summary. When the
// summarizer is unavailable or fails, the message is left unchanged and the
// adapter's LastError carries the reason.
func (c *Controller) RequestSummary(ctx context.Context, messageID string) (Message, error) {
	if c == nil {
		return Message{}, fmt.Errorf("controller is nil")
	}

	msg, ok := c.store.Get(messageID)
	if !ok {
		return Message{}, ErrMessageNotFound
	}

	summary, ok := c.summarizer.Summarize(ctx, msg.Text)
	if !ok {
		return msg, nil
	}

	patched, _ := c.store.SetSummary(messageID, summary)
	return patched, nil
}

// CanSummarize reports whether the UI should offer summarization for a
// message: long enough, in the configured source language, not yet
// summarized. The summarize adapter itself never enforces this policy.
func (c *Controller) CanSummarize(msg Message) bool {
	if c == nil || msg.Summary != nil || msg.Detection == nil {
		return false
	}
	if msg.Detection.LanguageCode != c.summaryLanguage {
		return false
	}
	return len(msg.Text) > c.summaryMinChars
}

// Messages returns the conversation as a read-only ordered sequence.
func (c *Controller) Messages() []Message {
	if c == nil {
		return nil
	}
	return c.store.Messages()
}

// Message returns one message by id.
func (c *Controller) Message(id string) (Message, bool) {
	if c == nil {
		return Message{}, false
	}
	return c.store.Get(id)
}

// Detector exposes the detection adapter's observables.
func (c *Controller) Detector() *detect.Adapter { return c.detector }

// Translator exposes the translation adapter's observables.
func (c *Controller) Translator() *translate.Adapter { return c.translator }

// Summarizer exposes the summarization adapter's observables.
func (c *Controller) Summarizer() *summarize.Adapter { return c.summarizer }
