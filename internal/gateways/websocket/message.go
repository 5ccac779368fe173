package websocket

import "kanbanify/internal/app/board"

const (
	msgDragStart  = "drag_start"
	msgDragOver   = "drag_over"
	msgDragEnd    = "drag_end"
	msgDragCancel = "drag_cancel"

	msgDragStarted = "drag_started"
	msgPreview     = "preview"
	msgBoard       = "board"
	msgError       = "error"
)

// Inbound is a drag gesture step sent by the client.
type Inbound struct {
	Type    string `json:"type"`
	BoardID string `json:"board_id"`
	CardID  string `json:"card_id"`
	OverID  string `json:"over_id"`
}

type Outbound struct {
	Type      string       `json:"type"`
	Board     *board.Board `json:"board,omitempty"`
	Moved     bool         `json:"moved"`
	Persisted bool         `json:"persisted"`
	Error     string       `json:"error,omitempty"`
}
