package dialogue

import "sync"

// Message roles. The collaborator wire format uses "model" for
// assistant turns, matching the Gemini API.
const (
	RoleSystem = "system"
	RoleUser   = "user"
	RoleModel  = "model"
)

// Message is one role-tagged entry of a conversation transcript.
type Message struct {
	Role    string
	Content string
}

// Transcript is a bounded, ordered conversation history. When the cap
// is exceeded the oldest non-system message is evicted; the system
// prompt always survives so the collaborator keeps its instructions.
type Transcript struct {
	messages []Message
	maxLen   int
	mu       sync.Mutex
}

// NewTranscript creates a transcript retaining at most maxLen messages.
func NewTranscript(maxLen int) *Transcript {
	return &Transcript{
		messages: make([]Message, 0, maxLen),
		maxLen:   maxLen,
	}
}

// Append adds a message, evicting the oldest evictable message when
// over the cap.
func (t *Transcript) Append(role, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, Message{Role: role, Content: content})

	for t.maxLen > 0 && len(t.messages) > t.maxLen {
		evictAt := 0
		if t.messages[0].Role == RoleSystem {
			evictAt = 1
		}
		t.messages = append(t.messages[:evictAt], t.messages[evictAt+1:]...)
	}
}

// Messages returns a copy of the transcript in order.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of retained messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
