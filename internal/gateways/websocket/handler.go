package websocket

import (
	"context"
	"net/http"
	"strings"
	"time"

	"kanbanify/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func requestToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	return strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
}

// ServeWS authenticates the caller, upgrades the connection and runs the read
// loop until the client goes away.
func (h *Hub) ServeWS(c *gin.Context) {
	userID := ""
	token := requestToken(c)
	switch {
	case token != "":
		id, err := h.tokens.UserIDFromToken(token)
		if err != nil {
			h.logger.Warnw("WebSocket connection rejected: invalid token",
				"client_ip", c.ClientIP(),
				"error", err,
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		userID = id
	case h.authRequired:
		h.logger.Warnw("WebSocket connection rejected: token missing",
			"client_ip", c.ClientIP(),
			"user_agent", c.GetHeader("User-Agent"),
		)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("Failed to upgrade connection", "user_id", userID, "error", err)
		return
	}

	client := newClient(h, conn, userID)
	if !h.Register(client) {
		_ = conn.Close()
		return
	}
	h.logger.Infow("WebSocket connection established",
		"client_id", client.ID,
		"user_id", userID,
		"client_ip", c.ClientIP(),
	)

	go client.writePump()
	h.readLoop(c.Request.Context(), client)
}

func (h *Hub) readLoop(ctx context.Context, client *Client) {
	defer func() {
		if client.drag != nil && !client.drag.Done() {
			h.boards.CancelDrag(client.drag)
		}
		h.Unregister(client)
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debugw("Read failed", "client_id", client.ID, "error", err)
			}
			return
		}
		var msg Inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reply(client, Outbound{Type: msgError, Error: "invalid message"})
			continue
		}
		h.reply(client, h.handle(ctx, client, msg))
	}
}

// handle applies one gesture step. A client holds at most one gesture; a new
// drag_start cancels the previous one.
func (h *Hub) handle(ctx context.Context, client *Client, msg Inbound) Outbound {
	switch msg.Type {
	case msgDragStart:
		if client.drag != nil && !client.drag.Done() {
			h.boards.CancelDrag(client.drag)
		}
		client.drag = nil
		session, ok := h.boards.StartDrag(ctx, client.UserID, msg.BoardID, msg.CardID)
		if !ok {
			return Outbound{Type: msgError, Error: "card not found"}
		}
		client.drag = session
		return Outbound{Type: msgDragStarted, Board: session.Preview()}

	case msgDragOver:
		if client.drag == nil || client.drag.Done() {
			return Outbound{Type: msgError, Error: "no active drag"}
		}
		preview, changed := client.drag.Over(msg.OverID)
		metrics.DragEvents.WithLabelValues("over", outcomeLabel(changed)).Inc()
		return Outbound{Type: msgPreview, Board: preview, Moved: changed}

	case msgDragEnd:
		if client.drag == nil {
			return Outbound{Type: msgError, Error: "no active drag"}
		}
		result := h.boards.CommitDrag(ctx, client.UserID, client.drag, msg.OverID)
		client.drag = nil
		return Outbound{Type: msgBoard, Board: result.Board, Moved: result.Moved, Persisted: result.Persisted}

	case msgDragCancel:
		if client.drag == nil {
			return Outbound{Type: msgError, Error: "no active drag"}
		}
		reverted := h.boards.CancelDrag(client.drag)
		client.drag = nil
		return Outbound{Type: msgBoard, Board: reverted}
	}
	return Outbound{Type: msgError, Error: "unknown message type"}
}

func (h *Hub) reply(client *Client, out Outbound) {
	payload, err := json.Marshal(out)
	if err != nil {
		h.logger.Errorw("Failed to encode reply", "client_id", client.ID, "error", err)
		return
	}
	if !client.enqueue(payload) {
		h.logger.Warnw("Reply dropped", "client_id", client.ID, "type", out.Type)
	}
}

func outcomeLabel(changed bool) string {
	if changed {
		return "moved"
	}
	return "noop"
}
