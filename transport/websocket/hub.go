package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const sendBufferSize = 32

// client is one websocket connection watching one game.
type client struct {
	gameID string
	send   chan []byte
}

// Hub fans game events out to every connection watching the game.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]map[*client]struct{}),
	}
}

// Notify - delivers the event to the game's watchers. A watcher whose buffer is full misses it.
func (that *Hub) Notify(_ context.Context, event entity.Event) {
	message, err := encodeMessage(ActionEvent, Payload{Event: &event})
	if err != nil {
		that.logger.Error("failed to encode event", "method", "Notify", "error", err)
		return
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	for c := range that.clients[event.GameID] {
		select {
		case c.send <- message:
		default:
			that.logger.Warn("client too slow, event dropped", "game_id", event.GameID, "event", event.Type)
		}
	}
}

// Watchers returns the number of connections watching the game.
func (that *Hub) Watchers(gameID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients[gameID])
}

func (that *Hub) register(gameID string) *client {
	c := &client{
		gameID: gameID,
		send:   make(chan []byte, sendBufferSize),
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.clients[gameID] == nil {
		that.clients[gameID] = make(map[*client]struct{})
	}
	that.clients[gameID][c] = struct{}{}

	return c
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	watchers, ok := that.clients[c.gameID]
	if !ok {
		return
	}

	if _, ok = watchers[c]; !ok {
		return
	}

	delete(watchers, c)
	close(c.send)

	if len(watchers) == 0 {
		delete(that.clients, c.gameID)
	}
}
