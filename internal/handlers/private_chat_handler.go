package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
)

type PrivateChatHandler struct {
	BaseHandler
	chatService services.PrivateChatService
}

func NewPrivateChatHandler(chatService services.PrivateChatService, logger utils.Logger) *PrivateChatHandler {
	return &PrivateChatHandler{
		BaseHandler: NewBaseHandler(logger),
		chatService: chatService,
	}
}

// Create starts a new invite-gated chat with the caller as sole member.
func (h *PrivateChatHandler) Create(c *gin.Context) {
	var req services.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	chat, err := h.chatService.CreateChat(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, chat)
}

// List returns the chats the caller is a member of.
func (h *PrivateChatHandler) List(c *gin.Context) {
	resp, err := h.chatService.ListChats(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// Get returns one chat the caller is a member of or pending in.
func (h *PrivateChatHandler) Get(c *gin.Context) {
	chat, err := h.chatService.GetChat(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, chat)
}

// Join puts the caller on the pending list of the chat behind an invite
// code. Membership is granted only after consent.
func (h *PrivateChatHandler) Join(c *gin.Context) {
	var req services.JoinChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	resp, err := h.chatService.RequestJoin(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// Invite lets a member put another user on the pending list.
func (h *PrivateChatHandler) Invite(c *gin.Context) {
	var req services.SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	chat, err := h.chatService.SendInvite(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, chat)
}

// Consent accepts or declines the caller's own pending invite.
func (h *PrivateChatHandler) Consent(c *gin.Context) {
	var req services.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	resp, err := h.chatService.ResolveConsent(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// History returns the newest messages of a chat. Members only.
func (h *PrivateChatHandler) History(c *gin.Context) {
	resp, err := h.chatService.History(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// Send stores a private message and broadcasts it to the chat room.
func (h *PrivateChatHandler) Send(c *gin.Context) {
	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	msg, err := h.chatService.SendMessage(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, msg)
}
