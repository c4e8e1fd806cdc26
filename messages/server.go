package messages

// Error codes
const (
	ErrCodeInvalidMessage   = "INVALID_MESSAGE"
	ErrCodeLLMError         = "LLM_ERROR"
	ErrCodeSessionFailed    = "SESSION_FAILED"
	ErrCodeConnectionClosed = "CONNECTION_CLOSED"
	ErrCodeRateLimited      = "RATE_LIMITED"
)

// Message types
const (
	TypeText   = "text"
	TypeStatus = "status"
	TypeError  = "error"
	TypeOrder  = "order"
)

// ServerMessage represents a message sent to the chat client
type ServerMessage struct {
	Type      string      `json:"type"` // "text", "status", "error", "order"
	SessionID string      `json:"sessionId,omitempty"`
	Payload   interface{} `json:"payload"`
}

// TextResponsePayload contains the assistant's reply for one turn
type TextResponsePayload struct {
	Text string `json:"text"`
}

// StatusPayload contains status updates
type StatusPayload struct {
	Status  string `json:"status"` // "connected", "session_complete", "disconnected"
	Message string `json:"message,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OrderPayload announces a committed order
type OrderPayload struct {
	OrderID    string `json:"orderId"`
	TotalItems int    `json:"totalItems"`
}

// NewTextMessage creates a text response message
func NewTextMessage(sessionID, text string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeText,
		SessionID: sessionID,
		Payload: TextResponsePayload{
			Text: text,
		},
	}
}

// NewStatusMessage creates a status message
func NewStatusMessage(sessionID, status, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeStatus,
		SessionID: sessionID,
		Payload: StatusPayload{
			Status:  status,
			Message: message,
		},
	}
}

// NewErrorMessage creates an error message
func NewErrorMessage(sessionID, code, message string) *ServerMessage {
	return &ServerMessage{
		Type:      TypeError,
		SessionID: sessionID,
		Payload: ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// NewOrderMessage creates an order confirmation message
func NewOrderMessage(sessionID, orderID string, totalItems int) *ServerMessage {
	return &ServerMessage{
		Type:      TypeOrder,
		SessionID: sessionID,
		Payload: OrderPayload{
			OrderID:    orderID,
			TotalItems: totalItems,
		},
	}
}
