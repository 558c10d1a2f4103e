package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Game serializes all access to one board and fans state out to its observers.
type Game struct {
	ID          string
	mu          sync.Mutex
	broadcastMu sync.Mutex // taken before mu is released so snapshots go out in order
	board       *BoardState
	history     []Move
	captured    CapturedPieces
	sound       string
	players     [2]ClientPlayer
	selections  map[string]*Selection
	connections *GameConnections
}

type GameState struct {
	Sound          string                       `json:"sound"`
	Board          [boardSize][boardSize]string `json:"board"`
	FEN            string                       `json:"fen"`
	ToMove         PlayerColor                  `json:"toMove"`
	MoveHistory    []Move                       `json:"moveHistory"`
	CapturedPieces CapturedPieces               `json:"capturedPieces"`
	Check          CheckState                   `json:"check"`
	SafeSquares    SafeSquares                  `json:"safeSquares"`
	LastMove       *SimpleMove                  `json:"lastMove"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// CapturedPieces lists the pieces each side has lost.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// ClickResult is what a click returns to the player who made it.
type ClickResult struct {
	Selected     *Position  `json:"selected"`
	Destinations []Position `json:"destinations"`
	Moved        bool       `json:"moved"`
}

func NewGame(id string) *Game {
	return newGameWithBoard(id, NewBoardState())
}

// NewGameFromFEN starts a game from an arbitrary position.
func NewGameFromFEN(id, fen string) (*Game, error) {
	board, err := NewBoardStateFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGameWithBoard(id, board), nil
}

func newGameWithBoard(id string, board *BoardState) *Game {
	return &Game{
		ID:    id,
		board: board,
		captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		history:     make([]Move, 0),
		players:     [2]ClientPlayer{{Color: PlayerColorWhite}, {Color: PlayerColorBlack}},
		selections:  make(map[string]*Selection),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// AddPlayer seats the player in the first free slot, white first. Adding a
// player who is already seated returns their color.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.colorOf(playerID); ok {
		return color, nil
	}
	for i := range g.players {
		if g.players[i].ID == "" {
			g.players[i].ID = playerID
			log.Infow("player joined", "game", g.ID, "player", playerID, "color", g.players[i].Color)
			return g.players[i].Color, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) colorOf(playerID string) (PlayerColor, bool) {
	if playerID == "" {
		return "", false
	}
	for _, p := range g.players {
		if p.ID == playerID {
			return p.Color, true
		}
	}
	return "", false
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.colorOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players[0].ID == "" || g.players[1].ID == ""
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	state := GameState{
		Sound:       g.sound,
		Board:       g.board.BoardView(),
		FEN:         g.board.FEN(),
		ToMove:      g.board.PlayerColor(),
		MoveHistory: make([]Move, len(g.history)),
		CapturedPieces: CapturedPieces{
			White: append([]Piece{}, g.captured.White...),
			Black: append([]Piece{}, g.captured.Black...),
		},
		Check:       g.board.CheckState(),
		SafeSquares: g.board.SafeSquares(),
		LastMove:    g.board.LastMove(),
	}
	copy(state.MoveHistory, g.history)
	state.Players.White = g.players[0]
	state.Players.Black = g.players[1]
	return state
}

// SafeSquares returns the legal moves of the side to move.
func (g *Game) SafeSquares() SafeSquares {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.SafeSquares()
}

// MakeMove plays a move on behalf of playerID, who must own the side to move.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	color, ok := g.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrPlayerNotInGame
	}
	if color != g.board.PlayerColor() {
		g.mu.Unlock()
		return ErrNotYourTurn
	}
	if err := g.executeMove(move); err != nil {
		g.mu.Unlock()
		return err
	}
	g.broadcastAndUnlock(g.snapshot())
	return nil
}

// Click forwards a square click to playerID's selection.
func (g *Game) Click(playerID string, x, y int) (ClickResult, error) {
	g.mu.Lock()
	color, ok := g.colorOf(playerID)
	if !ok {
		g.mu.Unlock()
		return ClickResult{}, ErrPlayerNotInGame
	}
	if color != g.board.PlayerColor() {
		g.mu.Unlock()
		return ClickResult{}, ErrNotYourTurn
	}
	sel, ok := g.selections[playerID]
	if !ok {
		sel = &Selection{}
		g.selections[playerID] = sel
	}

	var moved bool
	var err error
	if move := sel.Pick(g.board, x, y); move != nil {
		err = g.executeMove(WSMove{From: move.From, To: move.To})
		moved = err == nil
	}
	result := ClickResult{Selected: sel.Selected(), Destinations: sel.Destinations(), Moved: moved}
	if !moved {
		g.mu.Unlock()
		return result, err
	}
	g.broadcastAndUnlock(g.snapshot())
	return result, nil
}

// executeMove applies the move and updates history, captures and sound.
// The caller holds g.mu.
func (g *Game) executeMove(move WSMove) error {
	piece := g.board.PieceAt(move.From)
	captured := g.board.PieceAt(move.To)
	notation := ""
	if piece != nil {
		notation = getNotation(*piece, move, captured != nil)
	}

	if err := g.board.Move(move.From.X, move.From.Y, move.To.X, move.To.Y); err != nil {
		return err
	}

	g.sound = "move"
	if captured != nil {
		g.sound = "capture"
		if captured.Color == PlayerColorWhite {
			g.captured.White = append(g.captured.White, *captured)
		} else {
			g.captured.Black = append(g.captured.Black, *captured)
		}
	}
	check := g.board.CheckState()
	if check.InCheck {
		g.sound = "check"
		notation += "+"
	}

	ply := Ply{
		Piece:         *piece,
		From:          move.From,
		To:            move.To,
		CapturedPiece: captured,
		Notation:      notation,
	}
	if piece.Color == PlayerColorWhite || len(g.history) == 0 {
		g.history = append(g.history, Move{})
	}
	last := &g.history[len(g.history)-1]
	if piece.Color == PlayerColorWhite {
		last.WhitePly = ply
	} else {
		last.BlackPly = &ply
	}

	// selections made before the move point at stale safe squares
	for _, sel := range g.selections {
		sel.Clear()
	}
	log.Debugw("move applied", "game", g.ID, "move", notation, "toMove", g.board.PlayerColor())
	return nil
}

func getNotation(piece Piece, move WSMove, capture bool) string {
	prefix := piece.Type.getPieceNotation()
	if piece.Type == Pawn && capture {
		prefix = move.From.getFileNotation()
	}
	captureMark := ""
	if capture {
		captureMark = "x"
	}
	return fmt.Sprintf("%s%s%s", prefix, captureMark, move.To.getSquareNotation())
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	_, inGame := g.colorOf(playerID)
	isAuthorized := inGame || g.canSpectate()
	state := g.snapshot()
	g.broadcastMu.Lock()
	defer g.broadcastMu.Unlock()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.Wrapf(ErrPlayerNotInGame, "connect to game %s", g.ID)
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the existing connection and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return errors.Wrapf(ErrConnectionOpen, "player %s", playerID)
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infow("connection registered", "game", g.ID, "player", playerID)

	g.broadcast(state)
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		log.Infow("connection unregistered", "game", g.ID, "player", playerID)
		delete(g.connections.connections, playerID)
	}
}

// broadcast sends state to every connection. Connections that fail are dropped.
// broadcastAndUnlock sends state to every connection and releases g.mu. The
// caller holds g.mu; broadcastMu is acquired first so a later move cannot
// overtake this snapshot.
func (g *Game) broadcastAndUnlock(state GameState) {
	g.broadcastMu.Lock()
	defer g.broadcastMu.Unlock()
	g.mu.Unlock()
	g.broadcast(state)
}

func (g *Game) broadcast(state GameState) {
	if err := g.broadcastState(state); err != nil {
		log.Warnw("broadcast incomplete", "game", g.ID, "error", err)
	}
}

func (g *Game) broadcastState(state GameState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "marshal game state")
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	var result *multierror.Error
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "send to %s", playerID))
			delete(g.connections.connections, playerID)
		}
	}
	return result.ErrorOrNil()
}
