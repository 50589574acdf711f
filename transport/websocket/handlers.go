package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

)

const (
	actionBoard    = "game:board"
	actionEvaluate = "game:evaluate"
	actionError    = "error"
)

var errMissingPosition = errors.New("row and col are required")

func (that *Server) handleSetup(ctx context.Context, payload json.RawMessage) (any, error) {
	var req SetupPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	config := that.defaults.GameConfig()
	if req.Rows != nil {
		config.Rows = *req.Rows
	}
	if req.Cols != nil {
		config.Cols = *req.Cols
	}
	if req.NumMines != nil {
		config.NumMines = *req.NumMines
	}
	config.Seed = req.Seed

	return that.session.StartNewGame(ctx, config)
}

func (that *Server) handleReveal(ctx context.Context, payload json.RawMessage) (any, error) {
	row, col, err := decodePosition(payload)
	if err != nil {
		return nil, err
	}

	return that.session.Reveal(ctx, row, col)
}

func (that *Server) handleFlag(ctx context.Context, payload json.RawMessage) (any, error) {
	row, col, err := decodePosition(payload)
	if err != nil {
		return nil, err
	}

	return that.session.Flag(ctx, row, col)
}

func (that *Server) handleBoard(ctx context.Context, _ json.RawMessage) (any, error) {
	return that.session.Board(ctx)
}

func (that *Server) handleEvaluate(ctx context.Context, _ json.RawMessage) (any, error) {
	return that.session.Snapshot(ctx), nil
}

func decodePosition(payload json.RawMessage) (int, int, error) {
	var req PositionPayload
	if err := decodePayload(payload, &req); err != nil {
		return 0, 0, err
	}

	if req.Row == nil || req.Col == nil {
		return 0, 0, errMissingPosition
	}

	return *req.Row, *req.Col, nil
}

// decodePayload accepts an absent payload as an empty object.
func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}
