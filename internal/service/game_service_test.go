package service

import (
	"testing"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameServiceFlow(t *testing.T) {
	gs := NewGameService(NewGameManager())

	gameID, err := gs.CreateGame("")
	require.NoError(t, err)

	color, err := gs.JoinGame(gameID, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.PlayerColorWhite, color)
	color, err = gs.JoinGame(gameID, "bob")
	require.NoError(t, err)
	assert.Equal(t, model.PlayerColorBlack, color)

	safe, err := gs.GetSafeSquares(gameID)
	require.NoError(t, err)
	assert.Equal(t, 20, safe.Count())

	e2 := model.Position{X: 4, Y: 1}
	e4 := model.Position{X: 4, Y: 3}
	require.NoError(t, gs.HandleMove(gameID, "alice", model.WSMove{From: e2, To: e4}))

	res, err := gs.HandleClick(gameID, "bob", model.WSClick{X: 4, Y: 6})
	require.NoError(t, err)
	assert.Len(t, res.Destinations, 2)

	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	assert.Equal(t, model.PlayerColorBlack, state.ToMove)
	assert.Equal(t, "P", state.Board[4][3])
}

func TestGameServiceCreateFromFEN(t *testing.T) {
	gs := NewGameService(NewGameManager())

	gameID, err := gs.CreateGame("4k3/8/8/8/8/8/8/4K2R b - - 0 1")
	require.NoError(t, err)
	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	assert.Equal(t, model.PlayerColorBlack, state.ToMove)

	_, err = gs.CreateGame("garbage")
	assert.True(t, errors.Is(err, model.ErrInvalidFEN))
}

func TestGameServiceUnknownGame(t *testing.T) {
	gs := NewGameService(NewGameManager())

	_, err := gs.GetGameState("nope")
	assert.True(t, errors.Is(err, ErrGameNotFound))
	_, err = gs.JoinGame("nope", "alice")
	assert.True(t, errors.Is(err, ErrGameNotFound))
	err = gs.HandleMove("nope", "alice", model.WSMove{})
	assert.True(t, errors.Is(err, ErrGameNotFound))
	gs.UnregisterConnection("nope", "alice")
}
