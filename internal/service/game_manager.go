package service

import (
	"context"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

// matchNextPair creates a game for the two longest-waiting players and
// notifies them. It reports whether a pair was found.
func (gm *GameManager) matchNextPair() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID)
	events := make(map[string]model.MatchFoundEvent, 2)
	for _, playerID := range []string{player1, player2} {
		color, err := game.AddPlayer(playerID)
		if err != nil {
			log.Errorw("matchmaking: add player", "game", gameID, "player", playerID, "error", err)
			return true
		}
		events[playerID] = model.MatchFoundEvent{GameID: gameID, Color: color}
	}
	gm.games[gameID] = game
	for playerID, event := range events {
		gm.notifyMatch(playerID, event)
	}
	log.Infow("match created", "game", gameID, "white", player1, "black", player2)
	return true
}

// notifyMatch delivers the event to the player's channel and closes it.
// The caller holds gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Warnw("matchmaking: no channel for player", "player", playerID)
		return
	}
	delete(gm.matchingChannels, playerID)
	select {
	case ch <- event:
	default:
		log.Warnw("matchmaking: player not listening", "player", playerID)
	}
	close(ch)
}

// RegisterMatchmakingChannel returns a buffered channel on which the player
// receives a single MatchFoundEvent. A previous channel for the same player
// is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string) <-chan model.MatchFoundEvent {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	ch := make(chan model.MatchFoundEvent, 1)
	gm.matchingChannels[playerID] = ch
	return ch
}

// UnregisterMatchmakingChannel forgets the player's channel and takes them out of the queue.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if ch, ok := gm.matchingChannels[playerID]; ok {
		delete(gm.matchingChannels, playerID)
		close(ch)
	}
	gm.queue.RemovePlayer(playerID)
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, errors.Wrap(ErrGameExists, gameID)
	}

	game := model.NewGame(gameID)
	gm.games[gameID] = game
	return game, nil
}

// AddGame registers an already constructed game, e.g. one set up from FEN.
func (gm *GameManager) AddGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return errors.Wrap(ErrGameExists, game.ID)
	}
	gm.games[game.ID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrap(ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(playerID)
}

func (gm *GameManager) QueueSize() int {
	return gm.queue.Size()
}
