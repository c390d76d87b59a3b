package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/middleware"
	"github.com/yourusername/loanpilot/models"
	"gorm.io/gorm"
)

type ClientHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewClientHandler(db *gorm.DB, l *ledger.Ledger) *ClientHandler {
	return &ClientHandler{db: db, ledger: l}
}

const dateLayout = "2006-01-02"

type CreateClientRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Email                string  `json:"email" binding:"required,email"`
	Phone                string  `json:"phone" binding:"required"`
	AssignedStaffID      uint    `json:"assigned_staff_id" binding:"required"`
	LoanAmount           float64 `json:"loan_amount" binding:"required,gte=0"`
	LoanStartDate        string  `json:"loan_start_date" binding:"required"`
	InterestRate         float64 `json:"interest_rate" binding:"gte=0"`
	InstallmentFrequency string  `json:"installment_frequency" binding:"omitempty,oneof=Weekly Bi-Weekly Monthly"`
	InterestType         string  `json:"interest_type" binding:"omitempty,oneof=Installment Flat"`
	Tenure               int     `json:"tenure" binding:"omitempty,gte=1"`
	LoanDuration         int     `json:"loan_duration" binding:"omitempty,gte=1"` // weeks
}

// Create registers a client together with their loan and the generated
// repayment schedule.
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse(dateLayout, req.LoanStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "loan_start_date must be in YYYY-MM-DD format"})
		return
	}

	client, loan, installments, err := h.ledger.CreateClientWithLoan(c.Request.Context(), ledger.NewClientLoan{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		AssignedStaffID: req.AssignedStaffID,
		Principal:       decimal.NewFromFloat(req.LoanAmount),
		Rate:            decimal.NewFromFloat(req.InterestRate),
		Frequency:       req.InstallmentFrequency,
		InterestType:    req.InterestType,
		Tenure:          req.Tenure,
		DurationWeeks:   req.LoanDuration,
		StartDate:       startDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Client created successfully with loan and payment schedule",
		"client":   client,
		"loan":     loan,
		"payments": installments,
	})
}

// List returns all clients the requester may see, each with their loan,
// installments and next due date.
func (h *ClientHandler) List(c *gin.Context) {
	query := h.db.Preload("AssignedStaff")
	if staffID, scoped := middleware.StaffScope(c); scoped {
		query = query.Where("assigned_staff_id = ?", staffID)
	}

	var clients []models.Client
	if err := query.Order("created_at desc").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}

	out := make([]gin.H, 0, len(clients))
	for _, client := range clients {
		var loan *models.Loan
		var found models.Loan
		if err := h.db.Where("client_id = ?", client.ID).First(&found).Error; err == nil {
			loan = &found
		}

		var installments []models.Installment
		h.db.Where("client_id = ?", client.ID).Order("due_date asc").Find(&installments)

		nextDue := "-"
		for _, inst := range installments {
			if inst.Status == models.InstallmentPending || inst.Status == models.InstallmentOverdue {
				nextDue = inst.DueDate.Format("02 Jan 2006")
				break
			}
		}
		if nextDue == "-" && loan != nil && loan.Status == models.LoanCompleted {
			nextDue = "All Paid"
		}

		out = append(out, gin.H{
			"client":   client,
			"loan":     loan,
			"payments": installments,
			"next_due": nextDue,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(out),
		"clients": out,
	})
}

// Get returns one client's profile with loan and installment details.
func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.loadScopedClient(c)
	if !ok {
		return
	}

	var loan *models.Loan
	var found models.Loan
	if err := h.db.Where("client_id = ?", client.ID).First(&found).Error; err == nil {
		loan = &found
	}

	var installments []models.Installment
	h.db.Where("client_id = ?", client.ID).Order("installment_no asc").Find(&installments)

	c.JSON(http.StatusOK, gin.H{
		"client":   client,
		"loan":     loan,
		"payments": installments,
	})
}

type UpdateClientRequest struct {
	Name                 string   `json:"name"`
	Email                string   `json:"email" binding:"omitempty,email"`
	Phone                string   `json:"phone"`
	Status               string   `json:"status" binding:"omitempty,oneof=Active Pending Overdue Paid"`
	LoanAmount           *float64 `json:"loan_amount" binding:"omitempty,gte=0"`
	LoanStartDate        string   `json:"loan_start_date"`
	InterestRate         *float64 `json:"interest_rate" binding:"omitempty,gte=0"`
	InstallmentFrequency string   `json:"installment_frequency" binding:"omitempty,oneof=Weekly Bi-Weekly Monthly"`
	InterestType         string   `json:"interest_type" binding:"omitempty,oneof=Installment Flat"`
	Tenure               *int     `json:"tenure" binding:"omitempty,gte=1"`
	LoanDuration         *int     `json:"loan_duration" binding:"omitempty,gte=1"`
}

// Update edits client details and, when financial fields are supplied,
// the loan terms. A term change regenerates the pending schedule.
func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.loadScopedClient(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := ledger.LoanPatch{
		Tenure:        req.Tenure,
		DurationWeeks: req.LoanDuration,
	}
	if req.LoanAmount != nil {
		amount := decimal.NewFromFloat(*req.LoanAmount)
		patch.LoanAmount = &amount
	}
	if req.InterestRate != nil {
		rate := decimal.NewFromFloat(*req.InterestRate)
		patch.InterestRate = &rate
	}
	if req.InstallmentFrequency != "" {
		patch.Frequency = &req.InstallmentFrequency
	}
	if req.InterestType != "" {
		patch.InterestType = &req.InterestType
	}
	if req.LoanStartDate != "" {
		startDate, err := time.Parse(dateLayout, req.LoanStartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "loan_start_date must be in YYYY-MM-DD format"})
			return
		}
		patch.LoanStartDate = &startDate
	}
	termsSupplied := patch.LoanAmount != nil || patch.InterestRate != nil ||
		patch.Frequency != nil || patch.InterestType != nil ||
		patch.Tenure != nil || patch.DurationWeeks != nil || patch.LoanStartDate != nil

	var loan *models.Loan
	var found models.Loan
	haveLoan := h.db.Where("client_id = ?", client.ID).First(&found).Error == nil
	if haveLoan {
		loan = &found
	}
	if termsSupplied && !haveLoan {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client has no loan on file"})
		return
	}

	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Email != "" {
		client.Email = req.Email
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Status != "" {
		client.Status = req.Status
	}
	if err := h.db.Save(client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	if termsSupplied {
		var err error
		loan, err = h.ledger.EditLoanTerms(c.Request.Context(), found.ID, patch)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully",
		"client":  client,
		"loan":    loan,
	})
}

// Delete removes a client and all associated loan data. Admin only.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return
	}

	if err := h.ledger.DeleteClient(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client and associated data deleted successfully"})
}

// loadScopedClient fetches the client from the path parameter and
// enforces staff visibility. Writes the error response itself when it
// returns false.
func (h *ClientHandler) loadScopedClient(c *gin.Context) (*models.Client, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client id"})
		return nil, false
	}

	var client models.Client
	if err := h.db.Preload("AssignedStaff").First(&client, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return nil, false
	}

	if staffID, scoped := middleware.StaffScope(c); scoped && client.AssignedStaffID != staffID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return nil, false
	}

	return &client, true
}
