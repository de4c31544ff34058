package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Handler upgrades HTTP requests to team-feed connections
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. Only same-origin pages may
// connect unless allowAnyOrigin is set.
func NewHandler(hub *Hub, allowAnyOrigin bool, logger zerolog.Logger) *Handler {
	h := &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
	if allowAnyOrigin {
		h.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return h
}

// HandleConnection godoc
// @Summary Subscribe to newly registered teams
// @Description Upgrades to a WebSocket that receives a "team.added" event for every accepted registration
// @Tags teams, websocket
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Router /ws/teams [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := newClient(h.hub, conn, h.logger)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
