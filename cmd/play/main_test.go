package main

import (
	"strings"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPlaysMoves(t *testing.T) {
	board := model.NewBoardState()
	in := strings.NewReader("e2 e4\ne7\ne5\nfen\nquit\n")
	var out strings.Builder

	require.NoError(t, run(board, in, &out))

	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 1", board.FEN())
	assert.Contains(t, out.String(), board.FEN())
	assert.Contains(t, out.String(), "black to move> ")
}

func TestRunReportsErrors(t *testing.T) {
	board := model.NewBoardState()
	in := strings.NewReader("e2 e5\nz9\ne7 e5\n")
	var out strings.Builder

	require.NoError(t, run(board, in, &out))

	assert.Contains(t, out.String(), model.ErrIllegalMove.Error())
	assert.Contains(t, out.String(), model.ErrNotYourTurn.Error())
	assert.Equal(t, model.NewBoardState().FEN(), board.FEN())
}

func TestFormatMoves(t *testing.T) {
	board, err := model.NewBoardStateFromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	lines := strings.Split(formatMoves(board.SafeSquares()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "a1: "))
	assert.True(t, strings.HasPrefix(lines[1], "e1: "))
}
