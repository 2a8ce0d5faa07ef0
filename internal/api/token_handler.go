package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mharfe/storyforge-server/internal/models"
)

// GetBalance returns the caller's current token balance
func (h *Handler) GetBalance(c *gin.Context) {
	resp, err := h.svc.GetBalance(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PurchaseTokens credits purchased tokens to the caller's balance
func (h *Handler) PurchaseTokens(c *gin.Context) {
	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.svc.PurchaseTokens(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTransactions returns the caller's payment history, newest first
func (h *Handler) ListTransactions(c *gin.Context) {
	transactions, err := h.svc.ListTransactions(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// ListUsage returns the caller's token usage history, newest first
func (h *Handler) ListUsage(c *gin.Context) {
	usage, err := h.svc.ListUsage(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, usage)
}
