package model

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Selection turns clicks on squares into the select-then-place flow of a
// board UI. The zero value has nothing selected.
type Selection struct {
	square       *Position
	destinations []Position
}

func (s *Selection) Selected() *Position {
	if s.square == nil {
		return nil
	}
	p := *s.square
	return &p
}

func (s *Selection) Destinations() []Position {
	return slices.Clone(s.destinations)
}

func (s *Selection) Clear() {
	s.square = nil
	s.destinations = nil
}

// Pick handles a click on (x, y). Clicking an own piece selects it and
// clicking it again deselects it. When a piece is selected and one of its safe
// squares is clicked, Pick returns that move; the selection is kept until the
// caller clears it after applying the move.
func (s *Selection) Pick(b *BoardState, x, y int) *SimpleMove {
	pos := Position{X: x, Y: y}
	if !pos.Valid() {
		return nil
	}

	if piece := b.grid.at(pos); piece != nil && piece.Color == b.PlayerColor() {
		sameSquare := s.square != nil && *s.square == pos
		s.Clear()
		if !sameSquare {
			s.square = &pos
			s.destinations = b.SafeSquaresFrom(pos)
		}
		return nil
	}

	if s.square == nil || !slices.Contains(s.destinations, pos) {
		return nil
	}
	return &SimpleMove{From: *s.square, To: pos}
}

// Click picks (x, y) and plays the resulting move, if any, on b. It reports
// whether a move was applied.
func (s *Selection) Click(b *BoardState, x, y int) (bool, error) {
	move := s.Pick(b, x, y)
	if move == nil {
		return false, nil
	}
	if err := b.Move(move.From.X, move.From.Y, move.To.X, move.To.Y); err != nil {
		return false, err
	}
	s.Clear()
	return true, nil
}

// Render draws the board as text, rank 8 at the top. Dark empty squares are
// shown as ':', light ones as '.', the selected piece is bracketed, a king in
// check sits between '!' marks, the last move is parenthesized and safe squares
// of the selection are marked with '*'.
func Render(b *BoardState, sel *Selection) string {
	view := b.BoardView()
	var selected *Position
	var dests []Position
	if sel != nil {
		selected = sel.square
		dests = sel.destinations
	}
	last := b.LastMove()
	checked := b.CheckState().KingSquare

	var sb strings.Builder
	for y := boardSize - 1; y >= 0; y-- {
		sb.WriteByte(byte('1' + y))
		sb.WriteByte(' ')
		for x := 0; x < boardSize; x++ {
			pos := Position{X: x, Y: y}
			left, right := " ", " "
			switch {
			case selected != nil && *selected == pos:
				left, right = "[", "]"
			case checked != nil && *checked == pos:
				left, right = "!", "!"
			case last != nil && (last.From == pos || last.To == pos):
				left, right = "(", ")"
			}
			cell := view[x][y]
			if cell == "" {
				cell = "."
				if IsSquareDark(x, y) {
					cell = ":"
				}
			}
			if slices.Contains(dests, pos) {
				cell = "*"
			}
			sb.WriteString(left + cell + right)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	return sb.String()
}
