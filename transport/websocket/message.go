package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ActionState   = "game:state"
	ActionTurn    = "game:turn"
	ActionRestart = "game:restart"
	ActionEvent   = "game:event"
	ActionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Cell  *int          `json:"cell,omitempty"`
	Game  *entity.Game  `json:"game,omitempty"`
	Event *entity.Event `json:"event,omitempty"`
	Error string        `json:"error,omitempty"`
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: payloadBytes})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return message, nil
}
