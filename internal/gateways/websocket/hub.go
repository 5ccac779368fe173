package websocket

import (
	"context"

	"kanbanify/internal/app/board"
	"kanbanify/internal/metrics"
	"kanbanify/internal/middleware"
	"kanbanify/internal/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub keeps the connected clients grouped by user scope and forwards board
// events to every client of the scope that produced them.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     <-chan utils.Event
	done       chan struct{}
	logger     *zap.SugaredLogger

	boards       board.Service
	tokens       middleware.TokenParser
	authRequired bool
}

func NewHub(logger *zap.Logger, eventBus *utils.EventBus, boards board.Service, tokens middleware.TokenParser, authRequired bool) *Hub {
	return &Hub{
		boards:       boards,
		tokens:       tokens,
		authRequired: authRequired,
		clients:      make(map[string]map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		events:       eventBus.SubscribeCh(),
		done:         make(chan struct{}),
		logger:       logger.Sugar(),
	}
}

func generateClientID() string {
	return uuid.NewString()
}

func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("WebSocket Hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for _, scope := range h.clients {
				for client := range scope {
					client.close()
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			metrics.WSClients.Set(0)
			h.logger.Info("WebSocket Hub stopped")
			return

		case client := <-h.register:
			scope, ok := h.clients[client.UserID]
			if !ok {
				scope = make(map[*Client]bool)
				h.clients[client.UserID] = scope
			}
			scope[client] = true
			metrics.WSClients.Inc()
			h.logger.Infow("Client connected",
				"client_id", client.ID,
				"user_id", client.UserID,
				"clients_count", len(scope),
			)

		case client := <-h.unregister:
			h.remove(client)

		case event := <-h.events:
			h.broadcast(event)
		}
	}
}

func (h *Hub) remove(client *Client) {
	scope, ok := h.clients[client.UserID]
	if !ok || !scope[client] {
		return
	}
	delete(scope, client)
	if len(scope) == 0 {
		delete(h.clients, client.UserID)
	}
	client.close()
	metrics.WSClients.Dec()
	h.logger.Infow("Client disconnected",
		"client_id", client.ID,
		"user_id", client.UserID,
	)
}

func (h *Hub) broadcast(event utils.Event) {
	scope := h.clients[event.UserID]
	if len(scope) == 0 {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorw("Failed to encode event", "event", event.Event, "error", err)
		return
	}
	for client := range scope {
		if !client.enqueue(payload) {
			h.logger.Warnw("Dropping slow client", "client_id", client.ID, "user_id", client.UserID)
			h.remove(client)
		}
	}
}

// Register and Unregister return false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
