package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var errInvalidPayload = errors.New("invalid payload")

// State changes reach the client through the broker subscription, so the
// handlers only report failures.

func (that *Server) handleGameTurn(ctx context.Context, sessionID string, message *Message) error {
	var payload turnPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	if payload.Cell == nil {
		return fmt.Errorf("%w: cell is required", errInvalidPayload)
	}

	if _, err := that.gameUseCase.MakeTurn(ctx, sessionID, *payload.Cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

func (that *Server) handleRestart(ctx context.Context, sessionID string, _ *Message) error {
	if _, err := that.gameUseCase.Restart(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	return nil
}

func (that *Server) handleThemeToggle(ctx context.Context, sessionID string, _ *Message) error {
	if _, err := that.gameUseCase.ToggleTheme(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to toggle theme: %w", err)
	}

	return nil
}
