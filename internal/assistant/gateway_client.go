package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"beauty-assistant/internal/models"
)

// PlaceholderGatewayURL marks a gateway URL that was never filled in.
const PlaceholderGatewayURL = "YOUR_GATEWAY_URL_HERE"

var (
	ErrGatewayNotConfigured = errors.New("gateway URL is not set")
	ErrNoMessage            = errors.New("no message returned from AI")
)

// StatusError is a non-2xx reply from the gateway.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned status %d", e.StatusCode)
}

// Completer produces the assistant's reply for a message list.
type Completer interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// GatewayClient posts message lists to the proxy gateway. It sets no
// timeout of its own; only ctx can end a request early.
type GatewayClient struct {
	url        string
	httpClient *http.Client
}

func NewGatewayClient(url string) *GatewayClient {
	return &GatewayClient{url: url, httpClient: &http.Client{}}
}

// Complete sends messages and returns the trimmed reply text found at
// choices[0].message.content.
func (c *GatewayClient) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	if c.url == "" || strings.Contains(c.url, PlaceholderGatewayURL) {
		return "", ErrGatewayNotConfigured
	}

	payload, err := json.Marshal(models.ChatRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	var completion models.CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	reply := strings.TrimSpace(completion.Content())
	if reply == "" {
		return "", ErrNoMessage
	}
	return reply, nil
}
