package model

import "strings"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// MoveKind says whether a piece moves one offset per direction or repeats it until blocked.
type MoveKind int

const (
	Stepping MoveKind = iota
	Sliding
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

var (
	orthogonalDirs = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	diagonalDirs   = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs     = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs       = append(append([]Position{}, orthogonalDirs...), diagonalDirs...)
	queenDirs      = kingDirs

	whitePawnDirs = []Position{{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	blackPawnDirs = []Position{{X: 0, Y: -1}, {X: 0, Y: -2}, {X: 1, Y: -1}, {X: -1, Y: -1}}
)

// Piece is a single chessman. Color and Type never change once the piece is
// on the board; HasMoved flips to true on the first move of a king, rook or pawn.
type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	HasMoved bool        `json:"hasMoved"`
}

func NewPiece(t PieceType, c PlayerColor) *Piece {
	return &Piece{Type: t, Color: c}
}

// Directions returns the candidate offsets for the piece. The returned slice
// is shared and must not be modified.
func (p *Piece) Directions() []Position {
	switch p.Type {
	case King:
		return kingDirs
	case Queen:
		return queenDirs
	case Rook:
		return orthogonalDirs
	case Bishop:
		return diagonalDirs
	case Knight:
		return knightDirs
	case Pawn:
		if p.Color == PlayerColorWhite {
			return whitePawnDirs
		}
		return blackPawnDirs
	}
	return nil
}

func (p *Piece) MoveKind() MoveKind {
	switch p.Type {
	case Queen, Rook, Bishop:
		return Sliding
	default:
		return Stepping
	}
}

// TracksMoved reports whether the piece keeps a HasMoved flag.
func (p *Piece) TracksMoved() bool {
	switch p.Type {
	case King, Rook, Pawn:
		return true
	default:
		return false
	}
}

// Symbol returns the FEN letter of the piece, uppercase for white.
func (p *Piece) Symbol() string {
	var s string
	switch p.Type {
	case King:
		s = "k"
	case Queen:
		s = "q"
	case Rook:
		s = "r"
	case Bishop:
		s = "b"
	case Knight:
		s = "n"
	case Pawn:
		s = "p"
	default:
		return ""
	}
	if p.Color == PlayerColorWhite {
		return strings.ToUpper(s)
	}
	return s
}

// PieceFromSymbol is the inverse of Symbol. It returns nil for an unknown letter.
func PieceFromSymbol(r rune) *Piece {
	color := PlayerColorBlack
	if r >= 'A' && r <= 'Z' {
		color = PlayerColorWhite
		r += 'a' - 'A'
	}
	switch r {
	case 'k':
		return NewPiece(King, color)
	case 'q':
		return NewPiece(Queen, color)
	case 'r':
		return NewPiece(Rook, color)
	case 'b':
		return NewPiece(Bishop, color)
	case 'n':
		return NewPiece(Knight, color)
	case 'p':
		return NewPiece(Pawn, color)
	}
	return nil
}

// pawnStartRank is the rank a pawn of the given color starts on.
func pawnStartRank(c PlayerColor) int {
	if c == PlayerColorWhite {
		return 1
	}
	return 6
}
