package model

// isInCheck reports whether any piece of the other side attacks the king of color.
func isInCheck(grid *Grid, color PlayerColor) bool {
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			piece := grid[x][y]
			if piece == nil || piece.Color == color {
				continue
			}
			from := Position{X: x, Y: y}
			for _, dir := range piece.Directions() {
				// pawns attack diagonally only
				if piece.Type == Pawn && dir.X == 0 {
					continue
				}
				target := from.add(dir)
				for target.Valid() {
					attacked := grid.at(target)
					if attacked != nil && attacked.Type == King && attacked.Color == color {
						return true
					}
					if attacked != nil || piece.MoveKind() == Stepping {
						break
					}
					target = target.add(dir)
				}
			}
		}
	}
	return false
}

func findKing(grid *Grid, color PlayerColor) (Position, bool) {
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			if piece := grid[x][y]; piece != nil && piece.Type == King && piece.Color == color {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

// isSafeAfterMove plays the move on a copy of the grid and reports whether the
// mover's king is left unattacked. The grid passed in is never modified.
func isSafeAfterMove(grid Grid, from, to Position) bool {
	piece := grid.at(from)
	grid[from.X][from.Y] = nil
	grid[to.X][to.Y] = piece
	return !isInCheck(&grid, piece.Color)
}

// findSafeSquares builds the legal move map for color.
func findSafeSquares(grid *Grid, color PlayerColor) SafeSquares {
	safeSquares := SafeSquares{}
	for x := 0; x < boardSize; x++ {
		for y := 0; y < boardSize; y++ {
			piece := grid[x][y]
			if piece == nil || piece.Color != color {
				continue
			}
			from := Position{X: x, Y: y}
			var dests []Position
			for _, to := range candidateSquares(grid, from, piece) {
				if isSafeAfterMove(*grid, from, to) {
					dests = append(dests, to)
				}
			}
			if len(dests) > 0 {
				safeSquares[from] = dests
			}
		}
	}
	return safeSquares
}

// candidateSquares lists the destinations a piece could reach ignoring king safety.
func candidateSquares(grid *Grid, from Position, piece *Piece) []Position {
	var candidates []Position
	for _, dir := range piece.Directions() {
		target := from.add(dir)
		for target.Valid() {
			occupant := grid.at(target)
			if occupant != nil && occupant.Color == piece.Color {
				break
			}
			if piece.Type != Pawn || pawnCanReach(grid, from, dir, piece) {
				candidates = append(candidates, target)
			}
			if occupant != nil || piece.MoveKind() == Stepping {
				break
			}
			target = target.add(dir)
		}
	}
	return candidates
}

// pawnCanReach applies the pawn rules to a single candidate offset.
func pawnCanReach(grid *Grid, from, dir Position, pawn *Piece) bool {
	target := from.add(dir)
	occupant := grid.at(target)
	switch {
	case dir.X != 0:
		return occupant != nil && occupant.Color != pawn.Color
	case dir.Y == 2 || dir.Y == -2:
		if from.Y != pawnStartRank(pawn.Color) || occupant != nil {
			return false
		}
		return grid.at(from.add(Position{Y: dir.Y / 2})) == nil
	default:
		return occupant == nil
	}
}
