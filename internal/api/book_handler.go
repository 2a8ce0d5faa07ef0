package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mharfe/storyforge-server/internal/models"
)

// CreateBook creates a new book owned by the caller
func (h *Handler) CreateBook(c *gin.Context) {
	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	book, err := h.svc.CreateBook(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// GetBook returns a single book
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.svc.GetBook(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// ListBooks returns all books owned by the caller
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.svc.ListBooks(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

// SearchBooks returns the caller's books whose title matches the query
func (h *Handler) SearchBooks(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		respondBadRequest(c, "Query parameter 'title' is required")
		return
	}

	books, err := h.svc.SearchBooks(c.Request.Context(), callerID(c), title)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

// UpdateBook updates a book's title and description
func (h *Handler) UpdateBook(c *gin.Context) {
	var req models.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	book, err := h.svc.UpdateBook(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook deletes a book and all its chapters, pages and artifacts
func (h *Handler) DeleteBook(c *gin.Context) {
	if err := h.svc.DeleteBook(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

// ListChapters returns a book's chapters in reading order
func (h *Handler) ListChapters(c *gin.Context) {
	chapters, err := h.svc.ListChapters(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chapters)
}

// GetBookSummary returns the stored summary for a book
func (h *Handler) GetBookSummary(c *gin.Context) {
	summary, err := h.svc.GetBookSummary(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GenerateBookSummary generates and stores a summary for a book,
// debiting the caller's token balance
func (h *Handler) GenerateBookSummary(c *gin.Context) {
	resp, err := h.svc.GenerateBookSummary(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
