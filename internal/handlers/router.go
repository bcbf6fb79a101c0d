package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhall-app/studyhall-service/internal/auth"
	"github.com/studyhall-app/studyhall-service/internal/realtime"
	"github.com/studyhall-app/studyhall-service/internal/repositories"
	"github.com/studyhall-app/studyhall-service/internal/services"
	"github.com/studyhall-app/studyhall-service/internal/utils"
	"github.com/studyhall-app/studyhall-service/internal/validator"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	chatHandler        *ChatHandler
	questionHandler    *QuestionHandler
	privateChatHandler *PrivateChatHandler
	examHandler        *ExamHandler
	studentHandler     *StudentHandler
	wsHandler          *WebsocketHandler
	authMiddleware     *JWTAuthMiddleware
	repo               repositories.Repository
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	hub *realtime.Hub,
	validator *validator.Validator,
	logger utils.Logger,
	repo repositories.Repository,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), validator, logger),
		chatHandler:        NewChatHandler(serviceManager.Chat(), logger),
		questionHandler:    NewQuestionHandler(serviceManager.Question(), logger),
		privateChatHandler: NewPrivateChatHandler(serviceManager.PrivateChat(), logger),
		examHandler:        NewExamHandler(serviceManager.Exam(), logger),
		studentHandler:     NewStudentHandler(serviceManager.Student(), logger),
		wsHandler:          NewWebsocketHandler(hub, logger),
		authMiddleware:     NewJWTAuthMiddleware(tokens),
		repo:               repo,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	// Websocket endpoint; token arrives as a query parameter.
	router.GET("/ws", hm.authMiddleware.AuthRequired(), hm.wsHandler.Serve)

	general := NewRateLimiter(GeneralRateLimit, RateLimitWindow).Middleware()
	authLimit := NewRateLimiter(AuthRateLimit, RateLimitWindow).Middleware()
	createLimit := NewRateLimiter(CreateRateLimit, RateLimitWindow).Middleware()

	api := router.Group("/api")
	api.Use(general)
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/anonymous", authLimit, hm.authHandler.LoginAnonymous)
			authRoutes.POST("/oauth", authLimit, hm.authHandler.LoginOAuth)
			authRoutes.POST("/verify", hm.authHandler.VerifyToken)
			authRoutes.GET("/me", hm.authMiddleware.AuthRequired(), hm.authHandler.Me)
		}

		chat := api.Group("/chat")
		{
			chat.GET("/global", hm.chatHandler.History)
			chat.POST("/global", hm.authMiddleware.AuthRequired(), createLimit, hm.chatHandler.Send)
		}

		questions := api.Group("/questions")
		{
			questions.GET("", hm.questionHandler.List)
			questions.GET("/:id", hm.questionHandler.Get)

			// Posting needs a verified identity.
			questions.POST("", hm.authMiddleware.AuthRequired(), hm.authMiddleware.RequireVerified(), createLimit, hm.questionHandler.Create)
			questions.POST("/:id/reply", hm.authMiddleware.AuthRequired(), hm.authMiddleware.RequireVerified(), createLimit, hm.questionHandler.Reply)
		}

		privateChats := api.Group("/private-chats", hm.authMiddleware.AuthRequired())
		{
			privateChats.GET("", hm.privateChatHandler.List)
			privateChats.POST("", createLimit, hm.privateChatHandler.Create)
			privateChats.POST("/join", hm.privateChatHandler.Join)
			privateChats.GET("/:id", hm.privateChatHandler.Get)
			privateChats.POST("/:id/invite", hm.privateChatHandler.Invite)
			privateChats.POST("/:id/consent", hm.privateChatHandler.Consent)
			privateChats.GET("/:id/messages", hm.privateChatHandler.History)
			privateChats.POST("/:id/messages", createLimit, hm.privateChatHandler.Send)
		}

		exams := api.Group("/exams", hm.authMiddleware.AuthRequired())
		{
			exams.GET("", hm.examHandler.List)
			exams.GET("/:id", hm.examHandler.Get)
			exams.POST("/:id/submit", hm.examHandler.Submit)
			exams.GET("/:id/results", hm.examHandler.Result)
		}

		students := api.Group("/students", hm.authMiddleware.AuthRequired())
		{
			students.GET("", hm.studentHandler.Search)
			students.GET("/:id", hm.studentHandler.Profile)
			students.PUT("/profile", hm.studentHandler.UpdateProfile)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "ok"})
}
