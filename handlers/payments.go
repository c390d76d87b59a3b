package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/middleware"
	"github.com/yourusername/loanpilot/models"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewPaymentHandler(db *gorm.DB, l *ledger.Ledger) *PaymentHandler {
	return &PaymentHandler{db: db, ledger: l}
}

type RecordPaymentRequest struct {
	ClientID    uint    `json:"client_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentMode string  `json:"payment_mode" binding:"omitempty,oneof=Cash 'Bank Transfer'"`
}

// RecordManual records a cash or bank-transfer payment against the
// client's loan using waterfall allocation.
func (h *PaymentHandler) RecordManual(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	processed, loan, err := h.ledger.RecordPayment(
		c.Request.Context(),
		req.ClientID,
		decimal.NewFromFloat(req.Amount),
		req.PaymentMode,
		"",
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Payment recorded successfully",
		"processed_payments": processed,
		"loan":               loan,
	})
}

type StripeWebhookRequest struct {
	ClientID      uint    `json:"client_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	TransactionID string  `json:"transaction_id" binding:"required"`
}

// StripeWebhook records a confirmed Stripe payment. Runs through the
// same allocator as manual payments so loan totals stay consistent.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	var req StripeWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, _, err := h.ledger.RecordPayment(
		c.Request.Context(),
		req.ClientID,
		decimal.NewFromFloat(req.Amount),
		models.ModeStripe,
		req.TransactionID,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// ClientPayments returns the full installment history for a client.
func (h *PaymentHandler) ClientPayments(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("clientId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	var client models.Client
	if err := h.db.First(&client, uint(clientID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	if staffID, scoped := middleware.StaffScope(c); scoped && client.AssignedStaffID != staffID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var installments []models.Installment
	if err := h.db.Preload("Loan").
		Where("client_id = ?", client.ID).
		Order("installment_no asc").
		Find(&installments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(installments),
		"payments": installments,
	})
}
