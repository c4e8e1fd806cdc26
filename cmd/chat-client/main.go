package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
)

// Message types matching the server
type ClientMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type TextPayload struct {
	Text string `json:"text"`
}

type ServerMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type TextResponsePayload struct {
	Text string `json:"text"`
}

type StatusPayload struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type OrderPayload struct {
	OrderID    string `json:"orderId"`
	TotalItems int    `json:"totalItems"`
}

func main() {
	// Flags
	serverURL := flag.String("server", "ws://localhost:8080/ws", "WebSocket server URL")
	flag.Parse()

	log.Printf("🔌 Connecting to %s...", *serverURL)

	// Connect to server
	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	log.Println("✅ Connected!")

	// Handle interrupt
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})

	// Read responses from server
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var msg ServerMessage
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Println("Parse error:", err)
				continue
			}

			switch msg.Type {
			case "text":
				var payload TextResponsePayload
				json.Unmarshal(msg.Payload, &payload)
				fmt.Printf("AI: %s\n", payload.Text)

			case "status":
				var payload StatusPayload
				json.Unmarshal(msg.Payload, &payload)
				if payload.Status == "session_complete" {
					log.Println("--- Session complete ---")
					return
				}

			case "order":
				var payload OrderPayload
				json.Unmarshal(msg.Payload, &payload)
				log.Printf("🧾 Order %s confirmed (%d items)", payload.OrderID, payload.TotalItems)

			case "error":
				log.Printf("❌ Error: %s", string(msg.Payload))
			}
		}
	}()

	// Read utterances from stdin and send them
	input := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			input <- scanner.Text()
		}
		close(input)
	}()

	for {
		select {
		case <-done:
			log.Println("Connection closed")
			return

		case <-interrupt:
			log.Println("\n👋 Interrupted, closing...")
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			<-done
			return

		case line, ok := <-input:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				<-done
				return
			}
			if line == "" {
				continue
			}
			msg := ClientMessage{Type: "text", Payload: TextPayload{Text: line}}
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("Send error: %v", err)
				return
			}
		}
	}
}
