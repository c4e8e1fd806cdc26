package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/room4-2/OpenOrder/dialogue"
	"github.com/room4-2/OpenOrder/messages"

	"github.com/gorilla/websocket"
)

const (
	writeBufferSize = 64
	writeTimeout    = 10 * time.Second
	maxMessageSize  = 64 * 1024
)

// Conn binds one websocket connection to one ordering conversation.
// Turns are processed sequentially in the read loop, so the dialogue
// session is never mutated concurrently.
type Conn struct {
	ID           string
	ClientConn   *websocket.Conn
	Ordering     *dialogue.Session
	CreatedAt    time.Time
	LastActivity time.Time

	// Use a channel for non-blocking writes
	writeChan chan any

	mu        sync.RWMutex
	closed    bool
	CloseChan chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewConn creates a session connection wrapper
func NewConn(id string, clientConn *websocket.Conn, ordering *dialogue.Session) *Conn {
	ctx, cancel := context.WithCancel(context.Background())

	clientConn.SetReadLimit(maxMessageSize)

	return &Conn{
		ID:           id,
		ClientConn:   clientConn,
		Ordering:     ordering,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
		writeChan:    make(chan any, writeBufferSize),
		CloseChan:    make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins the turn loop for this connection
func (c *Conn) Start() {
	go c.writePump()
	c.queueMessage(messages.NewStatusMessage(c.ID, "connected", "Session established"))
	c.queueMessage(messages.NewTextMessage(c.ID, c.Ordering.Greeting()))
	go c.handleClientMessages()
}

// writePump handles all outgoing messages in a single goroutine
func (c *Conn) writePump() {
	defer func() {
		// Send close message before exiting
		c.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
		c.ClientConn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
	}()

	for {
		select {
		case <-c.CloseChan:
			return
		case msg, ok := <-c.writeChan:
			if !ok {
				// Channel closed, exit gracefully
				return
			}

			c.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))

			if err := c.ClientConn.WriteJSON(msg); err != nil {
				return
			}

			n := len(c.writeChan)
			for i := 0; i < n; i++ {
				select {
				case msg, ok := <-c.writeChan:
					if !ok {
						return
					}
					if err := c.ClientConn.WriteJSON(msg); err != nil {
						return
					}
				default:
					// No more messages, continue outer loop
				}
			}
		}
	}
}

// queueMessage adds a message to the write queue (non-blocking)
func (c *Conn) queueMessage(msg any) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return
	}
	select {
	case c.writeChan <- msg:
		c.mu.Lock()
		c.LastActivity = time.Now()
		c.mu.Unlock()
	default:
		// Queue full, drop message (shouldn't happen with proper sizing)
	}
}

// handleClientMessages reads utterances and applies them one at a time
func (c *Conn) handleClientMessages() {
	defer c.Close()

	for {
		select {
		case <-c.CloseChan:
			return
		default:
			_, message, err := c.ClientConn.ReadMessage()
			if err != nil {
				return
			}

			c.mu.Lock()
			c.LastActivity = time.Now()
			c.mu.Unlock()

			var clientMsg messages.ClientMessage
			if err := json.Unmarshal(message, &clientMsg); err != nil {
				c.queueMessage(messages.NewErrorMessage(c.ID, messages.ErrCodeInvalidMessage, "Invalid message format"))
				continue
			}

			if done := c.processClientMessage(&clientMsg); done {
				return
			}
		}
	}
}

// processClientMessage applies one client message. Returns true when
// the session has ended and the connection should close.
func (c *Conn) processClientMessage(msg *messages.ClientMessage) bool {
	switch msg.Type {
	case "text":
		var payload messages.TextPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.queueMessage(messages.NewErrorMessage(c.ID, messages.ErrCodeInvalidMessage, "Invalid text payload"))
			return false
		}
		return c.processTurn(payload.Text)

	case "control":
		var payload messages.ControlPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.queueMessage(messages.NewErrorMessage(c.ID, messages.ErrCodeInvalidMessage, "Invalid control payload"))
			return false
		}
		if payload.Action == "ping" {
			c.queueMessage(messages.NewStatusMessage(c.ID, "pong", ""))
		} else {
			c.queueMessage(messages.NewErrorMessage(c.ID, messages.ErrCodeInvalidMessage, "Unknown control action: "+payload.Action))
		}
		return false

	default:
		c.queueMessage(messages.NewErrorMessage(c.ID, messages.ErrCodeInvalidMessage, "Unknown message type: "+msg.Type))
		return false
	}
}

// processTurn runs one dialogue turn to completion before the next
// utterance is read.
func (c *Conn) processTurn(utterance string) bool {
	reply := c.Ordering.ProcessTurn(c.ctx, utterance)

	c.queueMessage(messages.NewTextMessage(c.ID, reply.Text))

	if !reply.Done {
		return false
	}

	if reply.Order != nil {
		log.Printf("✅ [%s] Order %s committed over websocket", c.shortID(), reply.Order.OrderID)
		c.queueMessage(messages.NewOrderMessage(c.ID, reply.Order.OrderID, reply.Order.TotalItems))
	}
	c.queueMessage(messages.NewStatusMessage(c.ID, "session_complete", ""))

	// Let the writePump drain before the deferred Close tears down.
	time.Sleep(100 * time.Millisecond)
	return true
}

// Close terminates the session and cleans up resources
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()

	// Close the write channel first to stop writePump
	close(c.writeChan)

	// Signal close (for other goroutines waiting on this)
	close(c.CloseChan)

	// Close client connection - don't write close message as writePump is stopped
	if c.ClientConn != nil {
		c.ClientConn.Close()
	}

	return nil
}

// IsClosed returns whether the session is closed
func (c *Conn) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// LastSeen returns the last activity time
func (c *Conn) LastSeen() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastActivity
}

func (c *Conn) shortID() string {
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}
