package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-widget/internal/widget"
)

const (
	actionTurn    = "game:turn"
	actionRestart = "game:restart"
	actionTheme   = "theme:toggle"

	actionState = "state"
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type turnPayload struct {
	Cell *int `json:"cell"`
}

type errorPayload struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
}

func stateMessage(view widget.View) (Message, error) {
	return newMessage(actionState, view)
}

func errorMessage(action, text string) (Message, error) {
	return newMessage(actionError, errorPayload{Action: action, Error: text})
}

func newMessage(action string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal %s payload: %w", action, err)
	}

	return Message{Action: action, Payload: raw}, nil
}
