package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

// SuccessResponse is the envelope for every 2xx body.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for every error body. Errors carries
// field-level details for validation failures.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "path", c.Request.URL.Path, "user_id", c.GetString("user_id"))
	h.logger.Debug(msg, args...)
}

func (h *BaseHandler) respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

func (h *BaseHandler) respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

func (h *BaseHandler) respondBadPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Invalid request payload",
		Errors:  err.Error(),
	})
}

// handleServiceError translates service errors into the HTTP taxonomy:
// 401 bad credential, 403 missing permission, 404 lookup miss, 400
// validation and conflicts, 500 everything else.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Errors:  verrs,
		})
		return
	}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Errors:  []*services.ValidationError{verr},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrVerifiedRequired),
		errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrGradeLevelMismatch):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: err.Error()})

	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})

	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyPending),
		errors.Is(err, services.ErrNoPendingInvite):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})

	default:
		h.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
