package model

import (
	"fmt"

	"github.com/pkg/errors"
)

const boardSize = 8

// Position is a square on the board. X is the file (0 = a), Y is the rank
// (0 = rank 1, white's back rank).
type Position struct {
	X int
	Y int
}

func (p Position) Valid() bool {
	return p.X >= 0 && p.X < boardSize && p.Y >= 0 && p.Y < boardSize
}

func (p Position) add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return p.getSquareNotation()
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+'a', p.Y+1)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+'a')
}

// MarshalText encodes the square in algebraic form so positions can key JSON objects.
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.Wrapf(ErrOutOfBounds, "marshal %d,%d", p.X, p.Y)
	}
	return []byte(p.getSquareNotation()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

// ParsePosition parses an algebraic square such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, errors.Wrapf(ErrOutOfBounds, "square %q", s)
	}
	p := Position{X: int(s[0]) - 'a', Y: int(s[1]) - '1'}
	if !p.Valid() {
		return Position{}, errors.Wrapf(ErrOutOfBounds, "square %q", s)
	}
	return p, nil
}

// IsSquareDark reports the checkerboard color of a square; a1 is dark.
func IsSquareDark(x, y int) bool {
	return (x+y)%2 == 0
}

// Grid holds the pieces indexed [x][y]. A nil slot is an empty square.
// Grid is a value type: assigning it copies the slots but shares the pieces.
type Grid [boardSize][boardSize]*Piece

func (g *Grid) at(p Position) *Piece {
	return g[p.X][p.Y]
}

// BoardState is the rules engine. It is not safe for concurrent use; callers
// serialize access per board (see Game).
type BoardState struct {
	grid        Grid
	playerColor PlayerColor
	safeSquares SafeSquares
	lastMove    *SimpleMove
	checkState  CheckState
}

// NewBoardState returns the standard starting position with white to move.
func NewBoardState() *BoardState {
	var grid Grid
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, t := range backRank {
		grid[x][0] = NewPiece(t, PlayerColorWhite)
		grid[x][1] = NewPiece(Pawn, PlayerColorWhite)
		grid[x][6] = NewPiece(Pawn, PlayerColorBlack)
		grid[x][7] = NewPiece(t, PlayerColorBlack)
	}
	return newBoardStateFromGrid(grid, PlayerColorWhite)
}

func newBoardStateFromGrid(grid Grid, toMove PlayerColor) *BoardState {
	b := &BoardState{
		grid:        grid,
		playerColor: toMove,
	}
	b.refresh()
	return b
}

// refresh recomputes the caches that depend on the side to move.
func (b *BoardState) refresh() {
	b.safeSquares = findSafeSquares(&b.grid, b.playerColor)
	b.checkState = CheckState{}
	if isInCheck(&b.grid, b.playerColor) {
		b.checkState.InCheck = true
		if king, ok := findKing(&b.grid, b.playerColor); ok {
			b.checkState.KingSquare = &king
		}
	}
}

func (b *BoardState) PlayerColor() PlayerColor {
	return b.playerColor
}

// BoardView returns a snapshot of piece symbols indexed [x][y]; "" marks an
// empty square. Later moves do not change a returned view.
func (b *BoardState) BoardView() [boardSize][boardSize]string {
	var view [boardSize][boardSize]string
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			if piece := b.grid[x][y]; piece != nil {
				view[x][y] = piece.Symbol()
			}
		}
	}
	return view
}

// SafeSquares returns a copy of the legal move map for the side to move.
func (b *BoardState) SafeSquares() SafeSquares {
	return b.safeSquares.clone()
}

// SafeSquaresFrom returns the legal destinations of the piece on from, or nil.
func (b *BoardState) SafeSquaresFrom(from Position) []Position {
	dests := b.safeSquares[from]
	if len(dests) == 0 {
		return nil
	}
	out := make([]Position, len(dests))
	copy(out, dests)
	return out
}

func (b *BoardState) CheckState() CheckState {
	cs := b.checkState
	if cs.KingSquare != nil {
		king := *cs.KingSquare
		cs.KingSquare = &king
	}
	return cs
}

func (b *BoardState) LastMove() *SimpleMove {
	if b.lastMove == nil {
		return nil
	}
	m := *b.lastMove
	return &m
}

// PieceAt returns a copy of the piece on p, or nil if the square is empty or off the board.
func (b *BoardState) PieceAt(p Position) *Piece {
	if !p.Valid() || b.grid.at(p) == nil {
		return nil
	}
	piece := *b.grid.at(p)
	return &piece
}

// IsInCheck reports whether the king of color is attacked on the current board.
func (b *BoardState) IsInCheck(color PlayerColor) bool {
	return isInCheck(&b.grid, color)
}

// Move applies a move for the side to move. Any rejection leaves the board
// untouched and returns ErrOutOfBounds, ErrNoPiece, ErrNotYourTurn or
// ErrIllegalMove (possibly wrapped).
func (b *BoardState) Move(fromX, fromY, toX, toY int) error {
	from := Position{X: fromX, Y: fromY}
	to := Position{X: toX, Y: toY}
	if !from.Valid() || !to.Valid() {
		return errors.Wrapf(ErrOutOfBounds, "move %v to %v", from, to)
	}
	piece := b.grid.at(from)
	if piece == nil {
		return errors.Wrapf(ErrNoPiece, "move from %v", from)
	}
	if piece.Color != b.playerColor {
		return errors.Wrapf(ErrNotYourTurn, "%s piece on %v", piece.Color, from)
	}
	if !b.safeSquares.Contains(from, to) {
		return errors.Wrapf(ErrIllegalMove, "%v to %v", from, to)
	}

	if piece.TracksMoved() && !piece.HasMoved {
		piece.HasMoved = true
	}
	b.grid[from.X][from.Y] = nil
	b.grid[to.X][to.Y] = piece

	b.playerColor = b.playerColor.Opposite()
	b.refresh()
	b.lastMove = &SimpleMove{From: from, To: to}
	return nil
}
