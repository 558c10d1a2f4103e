package model

import "golang.org/x/exp/slices"

// WSMove is the payload of an inbound move message.
type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// WSClick is the payload of an inbound click message.
type WSClick struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Ply struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
	Notation      string   `json:"notation"`
}

type Move struct {
	WhitePly Ply  `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type CheckState struct {
	InCheck    bool      `json:"inCheck"`
	KingSquare *Position `json:"kingSquare"`
}

// SafeSquares maps an origin square of the side to move to its legal
// destinations. Origins without a legal destination are absent.
type SafeSquares map[Position][]Position

func (s SafeSquares) Contains(from, to Position) bool {
	return slices.Contains(s[from], to)
}

// Count returns the number of legal moves across all origins.
func (s SafeSquares) Count() int {
	n := 0
	for _, dests := range s {
		n += len(dests)
	}
	return n
}

func (s SafeSquares) clone() SafeSquares {
	out := make(SafeSquares, len(s))
	for from, dests := range s {
		out[from] = slices.Clone(dests)
	}
	return out
}
