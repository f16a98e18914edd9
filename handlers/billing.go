// File: questly/handlers/billing.go
package handlers

import (
	"errors"
	"net/http"

	"questly/models"
	"questly/services/billing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCoinPacksHandler drives GET /api/billing/packs.
func (h *HandlerBundle) GetCoinPacksHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"packs": h.Billing.Packs()})
}

// CreatePurchaseIntentHandler drives POST /api/billing/purchase (guardian
// only).
func (h *HandlerBundle) CreatePurchaseIntentHandler(c *gin.Context) {
	logger := getLogger(c)
	guardianID := c.GetString("userID")

	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	intent, err := h.Billing.CreatePurchaseIntent(c.Request.Context(), guardianID, req)
	if err != nil {
		var unknownPack billing.UnknownPackError
		var notLinked billing.NotLinkedError
		switch {
		case errors.As(err, &unknownPack):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &notLinked):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Purchase intent failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, intent)
}

// ConfirmPurchaseHandler drives POST /api/billing/purchase/:id/confirm.
func (h *HandlerBundle) ConfirmPurchaseHandler(c *gin.Context) {
	guardianID := c.GetString("userID")
	invoiceID := c.Param("id")

	invoice, err := h.Billing.ConfirmPurchase(c.Request.Context(), guardianID, invoiceID)
	if err != nil {
		getLogger(c).Error("Purchase confirmation failed", zap.String("invoiceID", invoiceID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// GetInvoicesHandler drives GET /api/billing/invoices.
func (h *HandlerBundle) GetInvoicesHandler(c *gin.Context) {
	guardianID := c.GetString("userID")

	invoices, err := h.Billing.Invoices(c.Request.Context(), guardianID)
	if err != nil {
		getLogger(c).Error("Failed to list invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}
