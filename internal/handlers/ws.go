package handlers

import (
	"log"
	"net/http"

	"github.com/ManishJoc14/note-library/internal/attempt"
	"github.com/ManishJoc14/note-library/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	hub     *ws.Hub
	manager *attempt.Manager
}

func NewWSHandler(hub *ws.Hub, manager *attempt.Manager) *WSHandler {
	return &WSHandler{hub: hub, manager: manager}
}

// HandleWebSocket subscribes a client to an attempt channel. The channel id
// is the unguessable token issued when the attempt started; tick and
// completion events are pushed here.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	channelID := c.Param("channel")
	if _, err := h.manager.GetByChannel(channelID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown attempt channel"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	h.hub.AddConnection(channelID, conn)

	// Reads are discarded; the read loop only notices disconnects.
	go func() {
		defer h.hub.RemoveConnection(channelID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
