package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
)

type ChatHandler struct {
	BaseHandler
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService, logger utils.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		chatService: chatService,
	}
}

// History returns the newest global messages.
func (h *ChatHandler) History(c *gin.Context) {
	resp, err := h.chatService.GlobalHistory(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// Send stores a global message and broadcasts it.
func (h *ChatHandler) Send(c *gin.Context) {
	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	msg, err := h.chatService.SendGlobalMessage(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, msg)
}
