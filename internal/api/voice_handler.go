package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mharfe/storyforge-server/internal/models"
)

// CreateFavoriteVoice saves a named voice blend for the caller
func (h *Handler) CreateFavoriteVoice(c *gin.Context) {
	var req models.FavoriteVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	voice, err := h.svc.CreateFavoriteVoice(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, voice)
}

// GetFavoriteVoice returns a single favorite voice
func (h *Handler) GetFavoriteVoice(c *gin.Context) {
	voice, err := h.svc.GetFavoriteVoice(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, voice)
}

// ListFavoriteVoices returns all of the caller's favorite voices
func (h *Handler) ListFavoriteVoices(c *gin.Context) {
	voices, err := h.svc.ListFavoriteVoices(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, voices)
}

// UpdateFavoriteVoice updates a saved voice blend
func (h *Handler) UpdateFavoriteVoice(c *gin.Context) {
	var req models.FavoriteVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	voice, err := h.svc.UpdateFavoriteVoice(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, voice)
}

// DeleteFavoriteVoice removes a saved voice blend
func (h *Handler) DeleteFavoriteVoice(c *gin.Context) {
	if err := h.svc.DeleteFavoriteVoice(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite voice deleted successfully"})
}
