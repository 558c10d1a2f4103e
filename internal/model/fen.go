package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NewBoardStateFromFEN builds a board from the placement and side-to-move
// fields of a FEN string. Castling, en passant and clock fields are accepted
// but ignored.
func NewBoardStateFromFEN(fen string) (*BoardState, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, errors.Wrap(ErrInvalidFEN, "empty string")
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != boardSize {
		return nil, errors.Wrapf(ErrInvalidFEN, "want %d ranks, got %d", boardSize, len(ranks))
	}

	var grid Grid
	for i, rank := range ranks {
		y := boardSize - 1 - i
		x := 0
		for _, r := range rank {
			if r >= '1' && r <= '8' {
				x += int(r - '0')
				continue
			}
			piece := PieceFromSymbol(r)
			if piece == nil {
				return nil, errors.Wrapf(ErrInvalidFEN, "unknown piece %q", r)
			}
			if x >= boardSize {
				return nil, errors.Wrapf(ErrInvalidFEN, "rank %d overflows", y+1)
			}
			if piece.Type == Pawn && y != pawnStartRank(piece.Color) {
				piece.HasMoved = true
			}
			grid[x][y] = piece
			x++
		}
		if x != boardSize {
			return nil, errors.Wrapf(ErrInvalidFEN, "rank %d has %d files", y+1, x)
		}
	}

	for _, color := range []PlayerColor{PlayerColorWhite, PlayerColorBlack} {
		if _, ok := findKing(&grid, color); !ok {
			return nil, errors.Wrapf(ErrInvalidFEN, "no %s king", color)
		}
	}

	toMove := PlayerColorWhite
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
		case "b":
			toMove = PlayerColorBlack
		default:
			return nil, errors.Wrapf(ErrInvalidFEN, "side to move %q", fields[1])
		}
	}
	return newBoardStateFromGrid(grid, toMove), nil
}

// FEN encodes the board. Castling and en passant fields are always "-".
func (b *BoardState) FEN() string {
	var sb strings.Builder
	for y := boardSize - 1; y >= 0; y-- {
		empty := 0
		for x := 0; x < boardSize; x++ {
			piece := b.grid[x][y]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.Symbol())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}
	if b.playerColor == PlayerColorWhite {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	sb.WriteString(" - - 0 1")
	return sb.String()
}
