package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: NewBaseHandler(logger),
		questionService: questionService,
	}
}

// List returns questions, optionally filtered by the subject query param.
func (h *QuestionHandler) List(c *gin.Context) {
	var subject *models.Subject
	if s := c.Query("subject"); s != "" {
		sub := models.Subject(s)
		subject = &sub
	}

	resp, err := h.questionService.List(c.Request.Context(), subject)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// Get returns one question with its replies.
func (h *QuestionHandler) Get(c *gin.Context) {
	q, err := h.questionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, q)
}

// Create posts a new question. Verified users only, enforced by middleware.
func (h *QuestionHandler) Create(c *gin.Context) {
	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	q, err := h.questionService.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, q)
}

// Reply appends a reply to a question. Verified users only.
func (h *QuestionHandler) Reply(c *gin.Context) {
	var req services.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	q, err := h.questionService.Reply(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, q)
}
