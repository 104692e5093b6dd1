package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is one entry in the conversation history. Messages are immutable
// once appended and the history is append-only for the life of the
// conversation.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	Timestamp time.Time

	// QuickActions are optional follow-up suggestions attached to agent
	// messages, in presentation order.
	QuickActions []string
}

func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

func NewAgentMessage(text string, quickActions ...string) Message {
	return Message{
		ID:           uuid.NewString(),
		Sender:       SenderAgent,
		Text:         text,
		Timestamp:    time.Now(),
		QuickActions: quickActions,
	}
}

// ConsentRequest is an opaque approval checkpoint surfaced to the UI
// boundary. It stays pending until the user decides.
type ConsentRequest struct {
	ID     string
	Action string
	Detail string
}

// ProcessorResult is what a [MessageProcessor] returns for one user turn.
type ProcessorResult struct {
	Message Message
	// RequiresConsent marks the turn as needing explicit user approval.
	// The flag without a ConsentRequest payload is treated as a no-op
	// consent, not an error.
	RequiresConsent bool
	ConsentRequest  *ConsentRequest
}

// MessageProcessor turns a user utterance plus the conversation so far into
// an agent reply. The history passed to Process does not include the
// message being processed.
type MessageProcessor interface {
	Process(ctx context.Context, text string, history []Message) (*ProcessorResult, error)
}

type messageLog struct {
	messages []Message
	mu       sync.Mutex
}

func (l *messageLog) Append(message Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, message)
}

// History returns a point-in-time copy of the conversation.
func (l *messageLog) History() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	history := make([]Message, len(l.messages))
	copy(history, l.messages)
	return history
}

func (l *messageLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}
