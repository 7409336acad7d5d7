package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMessageSize  = 4096
	shutdownTimeout = 5 * time.Second
)

var tracer = otel.Tracer("websocket")

type uGame interface {
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
}

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	hub      *Hub
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, c *client, message *Message) error
}

func New(logger *slog.Logger, uGame uGame, hub *Hub) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers[ActionState] = server.handleState
	server.handlers[ActionTurn] = server.handleTurn
	server.handlers[ActionRestart] = server.handleRestart

	return server
}

// Handler - the websocket endpoint, mounted at /ws.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWebSocket)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		that.logger.Info("Starting WebSocket server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// serveWebSocket - upgrades the connection and streams the game's events until the client leaves.
func (that *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "websocket.serve", trace.WithAttributes(
		attribute.String("http.url", r.URL.String()),
	))
	defer span.End()

	log := that.logger.With("method", "serveWebSocket")

	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		http.Error(w, "game_id is required", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("game.id", gameID))

	game, err := that.uGame.GetGame(ctx, gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to get game", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get game")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		span.RecordError(err)
		return
	}

	c := that.hub.register(gameID)
	log.Info("WebSocket connection established", "game_id", gameID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		that.writePump(conn, c)
	}()

	that.reply(c, ActionState, Payload{Game: game})
	that.readPump(ctx, conn, c)

	that.hub.unregister(c)
	<-done

	log.Info("WebSocket connection closed", "game_id", gameID)
}

// readPump - processes messages from the client.
func (that *Server) readPump(ctx context.Context, conn *websocket.Conn, c *client) {
	log := that.logger.With("method", "readPump", "game_id", c.gameID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			that.reply(c, ActionError, Payload{Error: "invalid message"})
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.reply(c, ActionError, Payload{Error: "unknown action: " + message.Action})
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Debug("error processing message", "action", message.Action, "error", err)
			that.reply(c, message.Action, Payload{Error: err.Error()})
		}
	}
}

// writePump - the only writer of conn: queued messages and keepalive pings.
func (that *Server) writePump(conn *websocket.Conn, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (that *Server) reply(c *client, action string, payload Payload) {
	message, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to encode reply", "method", "reply", "error", err)
		return
	}

	select {
	case c.send <- message:
	default:
		that.logger.Warn("client too slow, reply dropped", "game_id", c.gameID, "action", action)
	}
}

func (that *Server) handleState(ctx context.Context, c *client, _ *Message) error {
	game, err := that.uGame.GetGame(ctx, c.gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	that.reply(c, ActionState, Payload{Game: game})

	return nil
}

func (that *Server) handleTurn(ctx context.Context, c *client, message *Message) error {
	var payload Payload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell)
	}

	game, err := that.uGame.MakeTurn(ctx, c.gameID, *payload.Cell)
	if err != nil {
		return err
	}

	that.reply(c, ActionTurn, Payload{Game: game})

	return nil
}

func (that *Server) handleRestart(ctx context.Context, c *client, _ *Message) error {
	game, err := that.uGame.Restart(ctx, c.gameID)
	if err != nil {
		return err
	}

	that.reply(c, ActionRestart, Payload{Game: game})

	return nil
}
