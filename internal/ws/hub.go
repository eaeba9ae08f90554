package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to host screens watching a session queue.
const (
	EventQuestionSubmitted = "question_submitted"
	EventQuestionUpdated   = "question_updated"
	EventQuestionDeleted   = "question_deleted"
	EventQueueReordered    = "queue_reordered"
	EventSessionUpdated    = "session_updated"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.sessions[sessionID][conn] = true
	slog.Info("ws client connected", "session", sessionID, "total", len(h.sessions[sessionID]))
}

func (h *Hub) RemoveConnection(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.sessions[sessionID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.sessions, sessionID)
		}
		slog.Info("ws client disconnected", "session", sessionID)
	}
}

func (h *Hub) Broadcast(sessionID string, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.Error("ws marshal failed", "error", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.sessions[sessionID]))
	for conn := range h.sessions[sessionID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("ws write failed, dropping client", "session", sessionID, "error", err)
			h.RemoveConnection(sessionID, conn)
		}
	}
}
