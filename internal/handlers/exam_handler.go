package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/models"
	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
)

type ExamHandler struct {
	BaseHandler
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		examService: examService,
	}
}

// List returns exam summaries matching the caller's grade level, optionally
// filtered by subject.
func (h *ExamHandler) List(c *gin.Context) {
	var subject *models.Subject
	if s := c.Query("subject"); s != "" {
		sub := models.Subject(s)
		subject = &sub
	}

	resp, err := h.examService.List(c.Request.Context(), c.GetString("user_id"), subject)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// Get returns one exam with correct answers withheld.
func (h *ExamHandler) Get(c *gin.Context) {
	exam, err := h.examService.Get(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, exam)
}

// Submit grades the caller's answers and stores the submission.
func (h *ExamHandler) Submit(c *gin.Context) {
	var req services.SubmitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	resp, err := h.examService.Submit(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, resp)
}

// Result returns the caller's graded submission for an exam.
func (h *ExamHandler) Result(c *gin.Context) {
	sub, err := h.examService.Result(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, sub)
}
