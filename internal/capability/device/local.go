package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"horse.fit/homer/internal/capability"
	"horse.fit/homer/internal/language"
)

// chatClient calls an OpenAI-compatible chat completions endpoint.
type chatClient struct {
	baseURL        string
	completionsURL string
	model          string
	client         *http.Client
}

func newChatClient(endpoint, model string) *chatClient {
	base := normalizeEndpoint(endpoint)
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultModel
	}
	return &chatClient{
		baseURL:        base,
		completionsURL: base + "/chat/completions",
		model:          trimmedModel,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// ping verifies the endpoint answers; used as the readiness signal.
func (c *chatClient) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("build readiness request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("endpoint is not reachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 500 {
		return fmt.Errorf("endpoint readiness status %d", resp.StatusCode)
	}
	return nil
}

func (c *chatClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		TopP:        0.6,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionsURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload chatErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				return "", fmt.Errorf("endpoint status %d: %s", resp.StatusCode, msg)
			}
		}
		return "", fmt.Errorf("endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("completion response was empty")
	}
	return content, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// localTranslator serves translator handles bound to one language pair each.
type localTranslator struct {
	endpoint string
	model    string
}

func newLocalTranslator(endpoint, model string) *localTranslator {
	return &localTranslator{endpoint: endpoint, model: model}
}

func (t *localTranslator) Usability(_ context.Context, sourceLang, targetLang string) (capability.Availability, error) {
	source := language.NormalizeCode(sourceLang)
	target := language.NormalizeCode(targetLang)
	if source == "" || target == "" || source == target {
		return capability.AvailabilityNo, nil
	}
	if language.Known(source) && language.Known(target) {
		return capability.AvailabilityYes, nil
	}
	// Well-formed codes outside the catalog may still work with the model.
	return capability.AvailabilityMaybe, nil
}

func (t *localTranslator) Create(_ context.Context, sourceLang, targetLang string, _ capability.ProgressFunc) (capability.TranslatorHandle, error) {
	source := language.NormalizeCode(sourceLang)
	target := language.NormalizeCode(targetLang)
	if source == "" || target == "" {
		return nil, fmt.Errorf("source and target languages are required")
	}
	return &localTranslatorHandle{
		client:     newChatClient(t.endpoint, t.model),
		sourceName: language.Name(source),
		targetName: language.Name(target),
	}, nil
}

type localTranslatorHandle struct {
	client     *chatClient
	sourceName string
	targetName string
}

func (h *localTranslatorHandle) Ready(ctx context.Context) error {
	return h.client.ping(ctx)
}

func (h *localTranslatorHandle) Translate(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following %s segment into %s, without additional explanation.\n\n%s",
		h.sourceName, h.targetName, text,
	)
	return h.client.complete(ctx, prompt)
}

// localSummarizer serves summarizer handles with a uniform configuration.
type localSummarizer struct {
	endpoint string
	model    string
}

func newLocalSummarizer(endpoint, model string) *localSummarizer {
	return &localSummarizer{endpoint: endpoint, model: model}
}

func (s *localSummarizer) Usability(_ context.Context) (capability.Availability, error) {
	return capability.AvailabilityYes, nil
}

func (s *localSummarizer) Create(_ context.Context, _ capability.ProgressFunc) (capability.SummarizerHandle, error) {
	return &localSummarizerHandle{client: newChatClient(s.endpoint, s.model)}, nil
}

type localSummarizerHandle struct {
	client *chatClient
}

func (h *localSummarizerHandle) Ready(ctx context.Context) error {
	return h.client.ping(ctx)
}

func (h *localSummarizerHandle) Summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following text in one short paragraph, without additional explanation.\n\n%s",
		text,
	)
	return h.client.complete(ctx, prompt)
}

func normalizeEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultEndpoint
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if parsed.Path == "" {
		parsed.Path = "/v1"
	}
	return parsed.String()
}
