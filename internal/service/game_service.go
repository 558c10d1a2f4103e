package service

import (
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game from the standard position, or from fen when it is non-empty.
func (gs *GameService) CreateGame(fen string) (string, error) {
	gameID := uuid.New().String()

	if fen == "" {
		if _, err := gs.gameManager.CreateGame(gameID); err != nil {
			return "", errors.Wrap(err, "failed to create game")
		}
		return gameID, nil
	}

	game, err := model.NewGameFromFEN(gameID, fen)
	if err != nil {
		return "", err
	}
	if err := gs.gameManager.AddGame(game); err != nil {
		return "", errors.Wrap(err, "failed to create game")
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) GetSafeSquares(gameID string) (model.SafeSquares, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.SafeSquares(), nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gs *GameService) HandleClick(gameID string, playerID string, click model.WSClick) (model.ClickResult, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.ClickResult{}, err
	}
	return game.Click(playerID, click.X, click.Y)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string) <-chan model.MatchFoundEvent {
	return gs.gameManager.RegisterMatchmakingChannel(playerID)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
