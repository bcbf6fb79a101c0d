package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/realtime"
	"github.com/studyhall-app/studyhall-service/internal/utils"
)

type WebsocketHandler struct {
	BaseHandler
	hub *realtime.Hub
}

func NewWebsocketHandler(hub *realtime.Hub, logger utils.Logger) *WebsocketHandler {
	return &WebsocketHandler{
		BaseHandler: NewBaseHandler(logger),
		hub:         hub,
	}
}

// Serve upgrades the connection and registers it with the hub. Runs behind
// AuthRequired; websocket clients pass the token as a query parameter.
func (h *WebsocketHandler) Serve(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request, c.GetString("user_id"), c.GetString("username"))
}
