package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ResponsePayload carries the operation result, and Error when it was rejected.
type ResponsePayload struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type SetupPayload struct {
	Rows     *int   `json:"rows"`
	Cols     *int   `json:"cols"`
	NumMines *int   `json:"num_mines"`
	Seed     *int64 `json:"random_seed"`
}

type PositionPayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: data}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
