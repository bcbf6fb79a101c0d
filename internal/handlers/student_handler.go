package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		studentService: studentService,
	}
}

// Search finds classmates by grade level, subject, or free text. The caller
// is excluded from results.
func (h *StudentHandler) Search(c *gin.Context) {
	var gradeLevel *int
	if g := c.Query("gradeLevel"); g != "" {
		n, err := strconv.Atoi(g)
		if err != nil {
			h.handleServiceError(c, services.NewValidationError("gradeLevel", "must be a number", g))
			return
		}
		gradeLevel = &n
	}

	var subject, query *string
	if s := c.Query("subject"); s != "" {
		subject = &s
	}
	if q := c.Query("q"); q != "" {
		query = &q
	}

	resp, err := h.studentService.Search(c.Request.Context(), c.GetString("user_id"), gradeLevel, subject, query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// Profile returns a classmate's public profile.
func (h *StudentHandler) Profile(c *gin.Context) {
	profile, err := h.studentService.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, profile)
}

// UpdateProfile mutates the caller's own profile fields.
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	user, err := h.studentService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, user)
}
