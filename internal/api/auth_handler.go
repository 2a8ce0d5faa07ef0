package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mharfe/storyforge-server/internal/models"
)

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles user login. Attempts are rate limited per client IP
// when a limiter is configured.
func (h *Handler) Login(c *gin.Context) {
	if !h.loginLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Status:  "error",
			Code:    "RATE_LIMITED",
			Message: "Too many login attempts, try again later",
		})
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
