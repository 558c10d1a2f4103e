package model

import "github.com/pkg/errors"

var (
	ErrOutOfBounds = errors.New("square out of bounds")
	ErrNoPiece     = errors.New("no piece at from square")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("square is not safe")
	ErrInvalidFEN  = errors.New("invalid FEN")

	ErrGameFull        = errors.New("game is full")
	ErrPlayerNotInGame = errors.New("player not in game")
	ErrAlreadyQueued   = errors.New("player already in queue")
	ErrConnectionOpen  = errors.New("connection already exists")
)

// IsRejectedNoOp reports whether err is one of the move rejections that a
// click-driven UI can safely ignore: a bad coordinate, an empty origin or an
// origin owned by the other side. ErrIllegalMove is not in this class.
func IsRejectedNoOp(err error) bool {
	return errors.Is(err, ErrOutOfBounds) || errors.Is(err, ErrNoPiece) || errors.Is(err, ErrNotYourTurn)
}
