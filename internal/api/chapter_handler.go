package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mharfe/storyforge-server/internal/models"
)

// CreateChapter creates a new chapter in one of the caller's books
func (h *Handler) CreateChapter(c *gin.Context) {
	var req models.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	chapter, err := h.svc.CreateChapter(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, chapter)
}

// GetChapter returns a single chapter
func (h *Handler) GetChapter(c *gin.Context) {
	chapter, err := h.svc.GetChapter(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chapter)
}

// UpdateChapter updates a chapter's title and order
func (h *Handler) UpdateChapter(c *gin.Context) {
	var req models.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	chapter, err := h.svc.UpdateChapter(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chapter)
}

// DeleteChapter deletes a chapter and its pages and artifacts
func (h *Handler) DeleteChapter(c *gin.Context) {
	if err := h.svc.DeleteChapter(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chapter deleted successfully"})
}

// ListPages returns a chapter's pages ordered by page number
func (h *Handler) ListPages(c *gin.Context) {
	pages, err := h.svc.ListPages(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pages)
}

// ListImagePrompts returns the image prompts recorded for a chapter
func (h *Handler) ListImagePrompts(c *gin.Context) {
	prompts, err := h.svc.ListImagePrompts(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prompts)
}

// ListChapterAudio returns the audio renditions stored for a chapter
func (h *Handler) ListChapterAudio(c *gin.Context) {
	audio, err := h.svc.ListChapterAudio(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, audio)
}

// GetChapterSummary returns the stored summary for a chapter
func (h *Handler) GetChapterSummary(c *gin.Context) {
	summary, err := h.svc.GetChapterSummary(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GenerateImage generates an illustration for a chapter, debiting the
// caller's token balance
func (h *Handler) GenerateImage(c *gin.Context) {
	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.svc.GenerateImage(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateAudio generates an audio rendition of a chapter, debiting
// the caller's token balance
func (h *Handler) GenerateAudio(c *gin.Context) {
	var req models.GenerateAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.svc.GenerateChapterAudio(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateChapterSummary generates and stores a summary for a chapter,
// debiting the caller's token balance
func (h *Handler) GenerateChapterSummary(c *gin.Context) {
	resp, err := h.svc.GenerateChapterSummary(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
