package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mharfe/storyforge-server/internal/models"
	"github.com/mharfe/storyforge-server/internal/ratelimit"
	"github.com/mharfe/storyforge-server/internal/repository"
	"github.com/mharfe/storyforge-server/internal/service"
	"github.com/mharfe/storyforge-server/internal/utils"
	"github.com/sirupsen/logrus"
)

// Handler holds dependencies for API handlers
type Handler struct {
	svc               service.Service
	repo              repository.Repository
	tokens            *utils.JWTManager
	loginLimiter      *ratelimit.FixedWindowLimiter
	allowUserIDHeader bool
	logger            *logrus.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	svc service.Service,
	repo repository.Repository,
	tokens *utils.JWTManager,
	loginLimiter *ratelimit.FixedWindowLimiter,
	allowUserIDHeader bool,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		svc:               svc,
		repo:              repo,
		tokens:            tokens,
		loginLimiter:      loginLimiter,
		allowUserIDHeader: allowUserIDHeader,
		logger:            logger,
	}
}

// SetupRoutes configures all API routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(AuthMiddleware(h.tokens, h.repo, h.allowUserIDHeader))
	{
		tokens := protected.Group("/tokens")
		{
			tokens.GET("/balance", h.GetBalance)
			tokens.POST("/purchase", h.PurchaseTokens)
			tokens.GET("/transactions", h.ListTransactions)
			tokens.GET("/usage", h.ListUsage)
		}

		books := protected.Group("/books")
		{
			books.POST("", h.CreateBook)
			books.GET("", h.ListBooks)
			books.GET("/search", h.SearchBooks)
			books.GET("/:id", h.GetBook)
			books.PUT("/:id", h.UpdateBook)
			books.DELETE("/:id", h.DeleteBook)
			books.GET("/:id/chapters", h.ListChapters)
			books.GET("/:id/summary", h.GetBookSummary)
			books.POST("/:id/generate-summary", h.GenerateBookSummary)
		}

		chapters := protected.Group("/chapters")
		{
			chapters.POST("", h.CreateChapter)
			chapters.GET("/:id", h.GetChapter)
			chapters.PUT("/:id", h.UpdateChapter)
			chapters.DELETE("/:id", h.DeleteChapter)
			chapters.GET("/:id/pages", h.ListPages)
			chapters.GET("/:id/image-prompts", h.ListImagePrompts)
			chapters.GET("/:id/audio", h.ListChapterAudio)
			chapters.GET("/:id/summary", h.GetChapterSummary)
			chapters.POST("/:id/generate-image", h.GenerateImage)
			chapters.POST("/:id/generate-audio", h.GenerateAudio)
			chapters.POST("/:id/generate-summary", h.GenerateChapterSummary)
		}

		pages := protected.Group("/pages")
		{
			pages.POST("", h.CreatePage)
			pages.GET("/:id", h.GetPage)
			pages.PUT("/:id", h.UpdatePage)
			pages.DELETE("/:id", h.DeletePage)
		}

		voices := protected.Group("/voices")
		{
			voices.POST("", h.CreateFavoriteVoice)
			voices.GET("", h.ListFavoriteVoices)
			voices.GET("/:id", h.GetFavoriteVoice)
			voices.PUT("/:id", h.UpdateFavoriteVoice)
			voices.DELETE("/:id", h.DeleteFavoriteVoice)
		}
	}
}

// callerID returns the authenticated user ID set by the auth middleware
func callerID(c *gin.Context) string {
	return c.GetString("userId")
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "INVALID_ARGUMENT",
		Message: message,
	})
}

// respondError translates domain errors to HTTP responses
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Status:  "error",
			Code:    "NOT_FOUND",
			Message: "Resource not found",
		})
	case errors.Is(err, repository.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Status:  "error",
			Code:    "FORBIDDEN",
			Message: "You do not have access to this resource",
		})
	case errors.Is(err, repository.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INSUFFICIENT_BALANCE",
			Message: "Insufficient token balance",
		})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "DUPLICATE",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Code:    "INVALID_ARGUMENT",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Status:  "error",
			Code:    "UNAUTHORIZED",
			Message: "Invalid username or password",
		})
	default:
		h.logger.WithError(err).Error("internal error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:  "error",
			Code:    "INTERNAL_ERROR",
			Message: "Internal server error",
		})
	}
}
