package models

import "encoding/json"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload the client posts to the gateway.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ProxyRequest is the gateway's view of an incoming body. Messages stay raw
// so they reach the upstream exactly as the caller wrote them.
type ProxyRequest struct {
	Messages json.RawMessage `json:"messages"`
}

// CompletionRequest is the body sent to the upstream chat-completion API.
type CompletionRequest struct {
	Model               string          `json:"model"`
	Messages            json.RawMessage `json:"messages,omitempty"`
	MaxCompletionTokens int             `json:"max_completion_tokens"`
}

// CompletionResponse is the subset of the upstream reply the client reads.
type CompletionResponse struct {
	Choices []CompletionChoice `json:"choices"`
}

type CompletionChoice struct {
	Message ChatMessage `json:"message"`
}

// Content returns the first choice's text, or "" if there is none.
func (r *CompletionResponse) Content() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
