package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrInternal    = errors.New("internal error")
)

// InvalidMoveError is a rejected move or removal. The message is meant to be
// shown to the client as is.
type InvalidMoveError struct {
	Message string
}

func (e *InvalidMoveError) Error() string {
	return e.Message
}

func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

func NewInvalidMove(format string, args ...any) error {
	return &InvalidMoveError{Message: fmt.Sprintf(format, args...)}
}
