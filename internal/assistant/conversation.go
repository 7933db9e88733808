package assistant

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"beauty-assistant/internal/models"
)

var (
	ErrSystemMessage = errors.New("the system message is fixed at the start of the conversation")
	ErrEmptyMessage  = errors.New("message content is empty")
)

// Conversation is the ordered, append-only context sent upstream. Its first
// message is always the system instruction.
type Conversation struct {
	mu       sync.RWMutex
	messages []models.ChatMessage
}

func NewConversation(systemPrompt string) *Conversation {
	return &Conversation{
		messages: []models.ChatMessage{{Role: models.RoleSystem, Content: systemPrompt}},
	}
}

// Append adds non-empty user or assistant messages in order. Either all of
// msgs are appended or none are.
func (c *Conversation) Append(msgs ...models.ChatMessage) error {
	for _, m := range msgs {
		switch m.Role {
		case models.RoleUser, models.RoleAssistant:
		case models.RoleSystem:
			return ErrSystemMessage
		default:
			return fmt.Errorf("unknown message role %q", m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("%w (%s)", ErrEmptyMessage, m.Role)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msgs...)
	return nil
}

// Messages returns a copy of the full history.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

func (c *Conversation) System() models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.messages[0]
}

// Window is the view sent upstream: everything when limit <= 0, otherwise
// the system message plus the latest limit-1 messages. The newest message is
// always included, so a limit of 1 behaves like 2.
func (c *Conversation) Window(limit int) []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if limit == 1 {
		limit = 2
	}
	if limit <= 0 || limit >= len(c.messages) {
		out := make([]models.ChatMessage, len(c.messages))
		copy(out, c.messages)
		return out
	}

	out := make([]models.ChatMessage, 0, limit)
	out = append(out, c.messages[0])
	out = append(out, c.messages[len(c.messages)-(limit-1):]...)
	return out
}
