package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans attempt events (timer ticks, auto-submit) out to the websocket
// clients watching an attempt channel.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(channelID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.channels[channelID] == nil {
		h.channels[channelID] = make(map[*websocket.Conn]bool)
	}
	h.channels[channelID][conn] = true
	log.Printf("ws: client connected to channel %s (total: %d)", channelID, len(h.channels[channelID]))
}

func (h *Hub) RemoveConnection(channelID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.channels[channelID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.channels, channelID)
		}
		log.Printf("ws: client disconnected from channel %s", channelID)
	}
}

func (h *Hub) Broadcast(channelID string, message WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.channels[channelID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}
