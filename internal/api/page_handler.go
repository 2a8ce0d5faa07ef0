package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mharfe/storyforge-server/internal/models"
)

// CreatePage creates a new page in one of the caller's chapters
func (h *Handler) CreatePage(c *gin.Context) {
	var req models.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	page, err := h.svc.CreatePage(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, page)
}

// GetPage returns a single page
func (h *Handler) GetPage(c *gin.Context) {
	page, err := h.svc.GetPage(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdatePage updates a page's number and text content
func (h *Handler) UpdatePage(c *gin.Context) {
	var req models.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	page, err := h.svc.UpdatePage(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeletePage deletes a page
func (h *Handler) DeletePage(c *gin.Context) {
	if err := h.svc.DeletePage(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Page deleted successfully"})
}
