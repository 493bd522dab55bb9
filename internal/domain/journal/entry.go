package journal

import (
	"time"

	"github.com/google/uuid"

	"resty_chess/internal/domain/board"
)

const (
	ActionMove   = "move"
	ActionRemove = "remove"
)

// Entry records one successful board mutation.
type Entry struct {
	ID       string       `json:"id"`
	Action   string       `json:"action"`
	From     string       `json:"from_square,omitempty"`
	To       string       `json:"to_square,omitempty"`
	Square   string       `json:"square,omitempty"`
	Piece    board.Piece  `json:"piece"`
	Captured *board.Piece `json:"captured_piece,omitempty"`
	FEN      string       `json:"fen"`
	Turn     board.Color  `json:"turn"`
	At       time.Time    `json:"at"`
}

func NewMoveEntry(from, to string, moved board.Piece, captured *board.Piece, snap board.Snapshot) Entry {
	return Entry{
		ID:       uuid.New().String(),
		Action:   ActionMove,
		From:     from,
		To:       to,
		Piece:    moved,
		Captured: captured,
		FEN:      snap.FEN,
		Turn:     snap.Turn,
		At:       time.Now().UTC(),
	}
}

func NewRemoveEntry(square string, removed board.Piece, snap board.Snapshot) Entry {
	return Entry{
		ID:     uuid.New().String(),
		Action: ActionRemove,
		Square: square,
		Piece:  removed,
		FEN:    snap.FEN,
		Turn:   snap.Turn,
		At:     time.Now().UTC(),
	}
}
