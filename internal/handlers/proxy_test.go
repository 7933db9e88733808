package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"beauty-assistant/internal/models"
	"beauty-assistant/internal/services"
)

type stubRelay struct {
	credential bool
	resp       *services.UpstreamResponse
	err        error

	calls        int
	lastMessages json.RawMessage
}

func (s *stubRelay) HasCredential() bool {
	return s.credential
}

func (s *stubRelay) Relay(ctx context.Context, messages json.RawMessage) (*services.UpstreamResponse, error) {
	s.calls++
	s.lastMessages = messages
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func assertCORS(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var payload models.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&payload))
	return payload
}

func TestProxyHandler_OptionsAlwaysOK(t *testing.T) {
	for _, credential := range []bool{true, false} {
		relay := &stubRelay{credential: credential}
		h := NewProxyHandler(relay, "", nil)

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		rr := httptest.NewRecorder()
		h.Forward(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Zero(t, rr.Body.Len(), "pre-flight response must have no body")
		assertCORS(t, rr)
		assert.Zero(t, relay.calls)
	}
}

func TestProxyHandler_MissingCredential(t *testing.T) {
	relay := &stubRelay{credential: false}
	h := NewProxyHandler(relay, "*", nil)

	body := `{"messages":[{"role":"user","content":"Hello"}]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Forward(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assertCORS(t, rr)
	payload := decodeError(t, rr)
	assert.Equal(t, msgMissingCredential, payload.Error)
	assert.Zero(t, relay.calls)
}

func TestProxyHandler_MalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"truncated object", `{"messages":[`},
		{"plain text", `hello there`},
		{"empty body", ``},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			relay := &stubRelay{credential: true}
			h := NewProxyHandler(relay, "*", nil)

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.Forward(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assertCORS(t, rr)
			assert.Equal(t, msgInvalidJSON, decodeError(t, rr).Error)
			assert.Zero(t, relay.calls, "no upstream call for malformed input")
		})
	}
}

func TestProxyHandler_OversizedBodyIsMalformed(t *testing.T) {
	relay := &stubRelay{credential: true}
	h := NewProxyHandler(relay, "*", nil)

	big := `{"messages":"` + strings.Repeat("a", maxRequestBodySize) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	rr := httptest.NewRecorder()
	h.Forward(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, relay.calls)
}

func TestProxyHandler_RelaysUpstreamVerbatim(t *testing.T) {
	upstreamBody := `{"id":"chatcmpl-1","choices":[{"message":{"role":"assistant","content":"Try a gentle cleanser."}}]}`
	relay := &stubRelay{
		credential: true,
		resp:       &services.UpstreamResponse{StatusCode: http.StatusOK, Body: json.RawMessage(upstreamBody)},
	}
	h := NewProxyHandler(relay, "*", nil)

	messages := `[{"role":"system","content":"You are helpful."},{"role":"user","content":"Hi"}]`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"messages":`+messages+`}`))
	rr := httptest.NewRecorder()
	h.Forward(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assertCORS(t, rr)
	assert.Equal(t, upstreamBody, rr.Body.String())
	assert.Equal(t, 1, relay.calls)
	assert.JSONEq(t, messages, string(relay.lastMessages))
}

func TestProxyHandler_RelaysUpstreamErrorStatus(t *testing.T) {
	upstreamBody := `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`
	relay := &stubRelay{
		credential: true,
		resp:       &services.UpstreamResponse{StatusCode: http.StatusUnauthorized, Body: json.RawMessage(upstreamBody)},
	}
	h := NewProxyHandler(relay, "*", nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"messages":[]}`))
	rr := httptest.NewRecorder()
	h.Forward(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, upstreamBody, rr.Body.String())
}

func TestProxyHandler_UpstreamFailure(t *testing.T) {
	relay := &stubRelay{credential: true, err: errors.New("dial tcp: connection refused")}
	h := NewProxyHandler(relay, "*", nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"messages":[]}`))
	rr := httptest.NewRecorder()
	h.Forward(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assertCORS(t, rr)
	payload := decodeError(t, rr)
	assert.Equal(t, msgUpstreamFailure, payload.Error)
	assert.Equal(t, "dial tcp: connection refused", payload.Details)
}

func TestProxyHandler_NonObjectJSONHasNoMessages(t *testing.T) {
	relay := &stubRelay{
		credential: true,
		resp:       &services.UpstreamResponse{StatusCode: http.StatusBadRequest, Body: json.RawMessage(`{"error":{}}`)},
	}
	h := NewProxyHandler(relay, "*", nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[1,2,3]`))
	rr := httptest.NewRecorder()
	h.Forward(rr, req)

	assert.Equal(t, 1, relay.calls)
	assert.Nil(t, relay.lastMessages)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (f failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestProxyHandler_LogsFailedDelivery(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	relay := &stubRelay{
		credential: true,
		resp:       &services.UpstreamResponse{StatusCode: http.StatusOK, Body: json.RawMessage(`{"choices":[]}`)},
	}
	h := NewProxyHandler(relay, "*", zap.New(core))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"messages":[{"role":"user","content":"secret"}]}`))
	req.Header.Set("X-Request-ID", "req-1")
	h.Forward(failingWriter{rr}, req)

	entries := logs.FilterMessage("failed to deliver upstream reply").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "broken pipe", fields["error"])
	assert.NotContains(t, entries[0].Message+fmt.Sprint(fields), "secret", "message content is never logged")
}

func TestProxyHandler_SuccessfulDeliveryLogsNothing(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	relay := &stubRelay{
		credential: true,
		resp:       &services.UpstreamResponse{StatusCode: http.StatusOK, Body: json.RawMessage(`{"choices":[]}`)},
	}
	h := NewProxyHandler(relay, "*", zap.New(core))

	rr := httptest.NewRecorder()
	h.Forward(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"messages":[]}`)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, logs.Len())
}
