package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"beauty-assistant/internal/middleware"
	"beauty-assistant/internal/models"
	"beauty-assistant/internal/services"
)

const maxRequestBodySize = 1 << 20

const (
	msgMissingCredential = "Missing OPENAI_API_KEY credential in gateway environment."
	msgInvalidJSON       = "Invalid JSON in request body."
	msgUpstreamFailure   = "Error calling upstream completion API."
)

type completionRelay interface {
	HasCredential() bool
	Relay(ctx context.Context, messages json.RawMessage) (*services.UpstreamResponse, error)
}

// ProxyHandler is the gateway: it injects the server-held credential and
// relays the upstream reply. It keeps no state between requests and never
// logs message content.
type ProxyHandler struct {
	relay         completionRelay
	allowedOrigin string
	logger        *zap.Logger
}

// NewProxyHandler builds the relay handler. A nil logger discards the
// delivery failures it would report.
func NewProxyHandler(relay completionRelay, allowedOrigin string, logger *zap.Logger) *ProxyHandler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProxyHandler{relay: relay, allowedOrigin: allowedOrigin, logger: logger}
}

func (h *ProxyHandler) Forward(w http.ResponseWriter, r *http.Request) {
	middleware.SetCORSHeaders(w.Header(), h.allowedOrigin)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if !h.relay.HasCredential() {
		writeJSON(w, http.StatusInternalServerError, errorResp(msgMissingCredential))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil || !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidJSON))
		return
	}

	// Valid JSON that is not an object simply carries no messages.
	var req models.ProxyRequest
	_ = json.Unmarshal(body, &req)

	resp, err := h.relay.Relay(r.Context(), req.Messages)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorRespWithDetails(msgUpstreamFailure, err))
		return
	}

	if err := writeRaw(w, resp.StatusCode, resp.Body); err != nil {
		h.logger.Warn("failed to deliver upstream reply",
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(resp.Body)),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.Error(err),
		)
	}
}
