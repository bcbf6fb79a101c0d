package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	validator   *validator.Validator
}

func NewAuthHandler(authService services.AuthService, validator *validator.Validator, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		validator:   validator,
	}
}

// LoginAnonymous mints a throwaway identity and returns its token.
// @Summary Anonymous login
// @Tags auth
// @Produce json
// @Success 201 {object} SuccessResponse{data=services.AuthResponse}
// @Router /auth/anonymous [post]
func (h *AuthHandler) LoginAnonymous(c *gin.Context) {
	resp, err := h.authService.LoginAnonymous(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, resp)
}

// LoginOAuth logs in or signs up an OAuth-backed identity.
// @Summary OAuth login
// @Tags auth
// @Accept json
// @Produce json
// @Param login body services.OAuthLoginRequest true "OAuth identity"
// @Success 200 {object} SuccessResponse{data=services.AuthResponse}
// @Router /auth/oauth [post]
func (h *AuthHandler) LoginOAuth(c *gin.Context) {
	var req services.OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}

	resp, err := h.authService.LoginOAuth(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// VerifyToken reports whether a token is valid and resolves its user.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req validator.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadPayload(c, err)
		return
	}
	if verrs := h.validator.Validate(req); verrs != nil {
		h.handleServiceError(c, verrs)
		return
	}

	resp, err := h.authService.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, resp)
}

// Me returns the caller's full record.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, user)
}
