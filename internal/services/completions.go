package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"beauty-assistant/internal/models"
)

const maxUpstreamResponseSize = 10 * 1024 * 1024

// UpstreamResponse is the upstream reply, untouched.
type UpstreamResponse struct {
	StatusCode int
	Body       json.RawMessage
}

// CompletionService forwards conversations to an OpenAI-style chat-completion
// endpoint with the gateway's credential attached.
type CompletionService struct {
	client    *http.Client
	url       string
	apiKey    string
	model     string
	maxTokens int
}

func NewCompletionService(url, apiKey, model string, maxTokens int, timeout time.Duration) *CompletionService {
	return &CompletionService{
		client:    &http.Client{Timeout: timeout},
		url:       url,
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
	}
}

// HasCredential reports whether an API key was configured.
func (s *CompletionService) HasCredential() bool {
	return s.apiKey != ""
}

// Relay posts messages upstream and returns the status and JSON body as
// received. Any status is a successful relay; only transport failures and
// non-JSON bodies are errors.
func (s *CompletionService) Relay(ctx context.Context, messages json.RawMessage) (*UpstreamResponse, error) {
	payload, err := json.Marshal(models.CompletionRequest{
		Model:               s.model,
		Messages:            messages,
		MaxCompletionTokens: s.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal upstream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned a non-JSON response (status %d)", resp.StatusCode)
	}

	return &UpstreamResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
