// Package gemini adapts the Gemini API to the dialogue package's
// Completer interface: one request per delegated turn, full transcript
// in, one assembled text reply out.
package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/room4-2/OpenOrder/dialogue"
)

// Chat is a turn-based Gemini client. Safe for use by multiple
// sessions; each Complete call is independent.
type Chat struct {
	client  *genai.Client
	model   string
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewChat creates a Gemini chat client.
func NewChat(ctx context.Context, apiKey, model string, timeout time.Duration) (*Chat, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	log.Printf("✅ Gemini chat client ready (%s)", model)
	return &Chat{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Complete sends the transcript and returns the model's text reply.
// The call is bounded by the configured timeout and never retried; a
// failure is the caller's cue to fall back to a scripted response.
func (c *Chat) Complete(ctx context.Context, messages []dialogue.Message) (string, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return "", fmt.Errorf("gemini client is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var system *genai.Content
	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case dialogue.RoleSystem:
			system = &genai.Content{
				Parts: []*genai.Part{{Text: msg.Content}},
			}
		default:
			contents = append(contents, &genai.Content{
				Role:  msg.Role,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr(float32(0.3)),
		MaxOutputTokens:   256,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := assembleText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty reply")
	}

	log.Printf("📥 Received from Gemini: %d chars", len(text))
	return text, nil
}

// assembleText joins the text parts of the first candidate.
func assembleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

// Close marks the client closed. The underlying genai client holds no
// persistent connection for turn-based calls.
func (c *Chat) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
