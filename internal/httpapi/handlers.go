package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"horse.fit/homer/internal/capability"
	"horse.fit/homer/internal/chat"
	"horse.fit/homer/internal/language"
)

type submitRequest struct {
	Text string `json:"text"`
}

type translateRequest struct {
	TargetLang string `json:"target_lang"`
}

type adapterStatus struct {
	Loading   bool   `json:"loading"`
	LastError string `json:"last_error,omitempty"`
}

type messageView struct {
	chat.Message
	CanSummarize bool `json:"can_summarize"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "homer",
		"time":    time.Now().UTC(),
	})
}

func (s *Server) handleCapabilities(c echo.Context) error {
	ctx := c.Request().Context()

	verdicts := map[string]any{}

	detectorVerdict, err := s.guard.DetectorUsability(ctx)
	if err != nil && !errors.Is(err, capability.ErrUnavailable) {
		s.logger.Error().Err(err).Msg("detector usability check failed")
		return internalError(c, "Failed to check capabilities")
	}
	verdicts["language_detector"] = string(detectorVerdict)

	summarizerVerdict, err := s.guard.SummarizerUsability(ctx)
	if err != nil && !errors.Is(err, capability.ErrUnavailable) {
		s.logger.Error().Err(err).Msg("summarizer usability check failed")
		return internalError(c, "Failed to check capabilities")
	}
	verdicts["summarizer"] = string(summarizerVerdict)

	source := strings.TrimSpace(c.QueryParam("source"))
	target := strings.TrimSpace(c.QueryParam("target"))
	switch {
	case source != "" && target != "":
		translatorVerdict, err := s.guard.TranslatorUsability(ctx, source, target)
		if err != nil && !errors.Is(err, capability.ErrUnavailable) {
			s.logger.Error().Err(err).Msg("translator usability check failed")
			return internalError(c, "Failed to check capabilities")
		}
		verdicts["translator"] = string(translatorVerdict)
	default:
		// Without a pair the translator verdict is presence only.
		if _, ok := s.guard.Translator(); ok {
			verdicts["translator"] = string(capability.AvailabilityMaybe)
		} else {
			verdicts["translator"] = string(capability.AvailabilityNo)
		}
	}

	return success(c, verdicts)
}

func (s *Server) handleLanguages(c echo.Context) error {
	return success(c, map[string]any{
		"items": language.Options(),
	})
}

func (s *Server) handleListMessages(c echo.Context) error {
	messages := s.controller.Messages()
	items := make([]messageView, 0, len(messages))
	for _, msg := range messages {
		items = append(items, messageView{
			Message:      msg,
			CanSummarize: s.controller.CanSummarize(msg),
		})
	}

	return success(c, map[string]any{
		"items": items,
		"adapters": map[string]adapterStatus{
			"language_detector": statusOf(s.controller.Detector()),
			"translator":        statusOf(s.controller.Translator()),
			"summarizer":        statusOf(s.controller.Summarizer()),
		},
	})
}

func (s *Server) handleSubmit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	msg, err := s.controller.Submit(c.Request().Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrBlankMessage):
			return fail(c, http.StatusBadRequest, "Message text must not be blank", nil)
		case errors.Is(err, capability.ErrUnavailable):
			return fail(c, http.StatusServiceUnavailable, "Language detection is not available on this device", nil)
		case errors.Is(err, chat.ErrDetectionFailed):
			return fail(c, http.StatusBadGateway, err.Error(), nil)
		default:
			s.logger.Error().Err(err).Msg("submit failed")
			return internalError(c, "Failed to submit message")
		}
	}

	return successWithStatus(c, http.StatusCreated, messageView{
		Message:      msg,
		CanSummarize: s.controller.CanSummarize(msg),
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if language.NormalizeCode(req.TargetLang) == "" {
		return fail(c, http.StatusBadRequest, "target_lang must be a valid language code", nil)
	}

	messageID := c.Param("message_id")
	msg, err := s.controller.RequestTranslation(c.Request().Context(), messageID, req.TargetLang)
	if err != nil {
		var pairErr *capability.PairError
		switch {
		case errors.Is(err, chat.ErrMessageNotFound):
			return failNotFound(c, "Message not found")
		case errors.As(err, &pairErr):
			return fail(c, http.StatusUnprocessableEntity, pairErr.Error(), nil)
		case errors.Is(err, capability.ErrUnavailable):
			return fail(c, http.StatusServiceUnavailable, "Translation is not available on this device", nil)
		default:
			return fail(c, http.StatusBadGateway, err.Error(), nil)
		}
	}

	return success(c, messageView{
		Message:      msg,
		CanSummarize: s.controller.CanSummarize(msg),
	})
}

func (s *Server) handleSummarize(c echo.Context) error {
	messageID := c.Param("message_id")
	msg, err := s.controller.RequestSummary(c.Request().Context(), messageID)
	if err != nil {
		if errors.Is(err, chat.ErrMessageNotFound) {
			return failNotFound(c, "Message not found")
		}
		s.logger.Error().Err(err).Msg("summary request failed")
		return internalError(c, "Failed to summarize message")
	}

	if msg.Summary == nil {
		reason := "Summarization produced no result"
		lastErr := s.controller.Summarizer().LastError()
		if lastErr != nil {
			reason = lastErr.Error()
		}
		if errors.Is(lastErr, capability.ErrUnavailable) {
			return fail(c, http.StatusServiceUnavailable, "Summarization is not available on this device", nil)
		}
		return fail(c, http.StatusBadGateway, reason, nil)
	}

	return success(c, messageView{
		Message:      msg,
		CanSummarize: s.controller.CanSummarize(msg),
	})
}

type loadingReporter interface {
	Loading() bool
	LastError() error
}

func statusOf(adapter loadingReporter) adapterStatus {
	status := adapterStatus{Loading: adapter.Loading()}
	if err := adapter.LastError(); err != nil {
		status.LastError = err.Error()
	}
	return status
}
