package controller

import (
	"encoding/json"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serializes writes: game broadcasts and direct replies share one socket.
type lockedConn struct {
	mu   sync.Mutex
	conn model.Conn
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

func (l *lockedConn) WriteMessage(messageType int, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteMessage(messageType, data)
}

func (l *lockedConn) Close() error {
	return l.conn.Close()
}

// HandleConnection runs the read loop of a game socket.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	conn := &lockedConn{conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		if errors.Is(err, model.ErrConnectionOpen) {
			// the socket is already closed and the first connection stays registered
			return
		}
		log.Warnw("failed to register connection", "game", gameID, "player", playerID, "error", err)
		wsc.sendError(conn, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugw("websocket closed", "game", gameID, "player", playerID, "error", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugw("websocket parse error", "game", gameID, "error", err)
			wsc.sendError(conn, err)
			continue
		}
		if err := wsc.handleMessage(conn, gameID, playerID, msg); err != nil {
			log.Debugw("websocket message rejected", "game", gameID, "player", playerID, "type", msg.Type, "error", err)
			wsc.sendError(conn, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(conn model.Conn, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeClick:
		var click model.WSClick
		if err := json.Unmarshal(msg.Payload, &click); err != nil {
			return err
		}
		result, err := wsc.gameService.HandleClick(gameID, playerID, click)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeSelection, result)
		if err != nil {
			return err
		}
		return conn.WriteJSON(reply)

	default:
		return errors.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking queues the player and waits for the match-found event.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	events := wsc.gameService.RegisterMatchmakingChannel(playerID)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		wsc.sendError(c, err)
		return
	}

	// a read error means the client went away before a match was found
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-events:
		if !ok {
			return
		}
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err != nil {
			log.Errorw("marshal match event", "player", playerID, "error", err)
			return
		}
		if err := c.WriteJSON(msg); err != nil {
			log.Warnw("send match event", "player", playerID, "error", err)
		}
	case <-closed:
	}
}

func (wsc *WebSocketController) sendError(conn model.Conn, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, err.Error())
	if merr != nil {
		return
	}
	if werr := conn.WriteJSON(msg); werr != nil {
		log.Debugw("send error message", "error", werr)
	}
}
