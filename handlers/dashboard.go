package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/loanpilot/cache"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/middleware"
	"github.com/yourusername/loanpilot/models"
	"gorm.io/gorm"
)

const summaryTTL = 60 * time.Second

type DashboardHandler struct {
	db    *gorm.DB
	cache cache.Cache
	now   func() time.Time
}

func NewDashboardHandler(db *gorm.DB, cc cache.Cache) *DashboardHandler {
	return &DashboardHandler{db: db, cache: cc, now: time.Now}
}

// WithClock overrides the time source. Tests only.
func (h *DashboardHandler) WithClock(now func() time.Time) *DashboardHandler {
	h.now = now
	return h
}

// AdminSummary aggregates portfolio totals, team performance and recent
// activity. Cached briefly since every widget on the admin home screen
// hits it.
func (h *DashboardHandler) AdminSummary(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := h.cache.Get(ctx, "dashboard:admin"); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	var totalClients, totalStaff int64
	h.db.Model(&models.Client{}).Count(&totalClients)
	h.db.Model(&models.User{}).Where("role = ?", "staff").Count(&totalStaff)

	var loans []models.Loan
	if err := h.db.Find(&loans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch loans"})
		return
	}

	totalLoanAmount := decimal.Zero
	totalCollected := decimal.Zero
	totalPending := decimal.Zero
	var activeLoans, completedLoans int
	for _, loan := range loans {
		totalLoanAmount = totalLoanAmount.Add(loan.LoanAmount)
		totalCollected = totalCollected.Add(loan.TotalPaid)
		totalPending = totalPending.Add(loan.RemainingAmount)
		switch loan.Status {
		case models.LoanActive:
			activeLoans++
		case models.LoanCompleted:
			completedLoans++
		}
	}

	today := ledger.Midnight(h.now())
	var overdueInstallments []models.Installment
	h.db.Where("status <> ? AND due_date < ?", models.InstallmentPaid, today).Find(&overdueInstallments)
	totalOverdue := decimal.Zero
	for _, inst := range overdueInstallments {
		totalOverdue = totalOverdue.Add(inst.Amount)
	}

	summary := gin.H{
		"total_clients":     totalClients,
		"total_staff":       totalStaff,
		"total_loans":       len(loans),
		"total_loan_amount": totalLoanAmount,
		"total_collected":   totalCollected,
		"total_pending":     totalPending,
		"total_overdue":     totalOverdue,
		"active_loans":      activeLoans,
		"completed_loans":   completedLoans,
		"team_performance":  h.teamPerformance(),
		"recent_activity":   h.recentActivity(),
	}

	if body, err := json.Marshal(summary); err == nil {
		h.cache.Set(ctx, "dashboard:admin", string(body), summaryTTL)
	}

	c.JSON(http.StatusOK, summary)
}

// StaffSummary aggregates the requesting staff member's own portfolio.
func (h *DashboardHandler) StaffSummary(c *gin.Context) {
	staffID, scoped := middleware.StaffScope(c)
	if !scoped {
		// Admins get the unscoped view.
		h.AdminSummary(c)
		return
	}

	var clients []models.Client
	if err := h.db.Where("assigned_staff_id = ?", staffID).Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}

	clientIDs := make([]uint, 0, len(clients))
	for _, client := range clients {
		clientIDs = append(clientIDs, client.ID)
	}

	totalCollected := decimal.Zero
	totalPending := decimal.Zero
	var activeLoans, completedLoans int
	if len(clientIDs) > 0 {
		var loans []models.Loan
		h.db.Where("client_id IN ?", clientIDs).Find(&loans)
		for _, loan := range loans {
			totalCollected = totalCollected.Add(loan.TotalPaid)
			totalPending = totalPending.Add(loan.RemainingAmount)
			switch loan.Status {
			case models.LoanActive:
				activeLoans++
			case models.LoanCompleted:
				completedLoans++
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_clients":   len(clients),
		"total_collected": totalCollected,
		"total_pending":   totalPending,
		"active_loans":    activeLoans,
		"completed_loans": completedLoans,
	})
}

type staffTotal struct {
	Name  string
	Total decimal.Decimal
}

// teamPerformance ranks staff by amount collected from their assigned
// clients, normalized against the top collector.
func (h *DashboardHandler) teamPerformance() []gin.H {
	var paid []models.Installment
	h.db.Preload("Loan").Where("status = ?", models.InstallmentPaid).Find(&paid)

	var clients []models.Client
	h.db.Preload("AssignedStaff").Find(&clients)
	staffByClient := make(map[uint]*models.User, len(clients))
	for i := range clients {
		staffByClient[clients[i].ID] = clients[i].AssignedStaff
	}

	totals := make(map[uint]*staffTotal)
	for _, inst := range paid {
		staff := staffByClient[inst.ClientID]
		if staff == nil {
			continue
		}
		entry, ok := totals[staff.ID]
		if !ok {
			entry = &staffTotal{Name: staff.Name, Total: decimal.Zero}
			totals[staff.ID] = entry
		}
		entry.Total = entry.Total.Add(inst.Amount)
	}

	top := decimal.Zero
	for _, entry := range totals {
		if entry.Total.GreaterThan(top) {
			top = entry.Total
		}
	}
	if top.IsZero() {
		top = decimal.NewFromInt(1)
	}

	out := make([]gin.H, 0, len(totals))
	for _, entry := range totals {
		percentage := entry.Total.Div(top).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		status := "Active"
		if percentage >= 90 {
			status = "Elite"
		} else if percentage >= 75 {
			status = "Senior"
		}
		out = append(out, gin.H{
			"name":            entry.Name,
			"val":             percentage,
			"status":          status,
			"total_collected": entry.Total,
		})
	}
	return out
}

// recentActivity merges the latest client creations and payments into
// one feed.
func (h *DashboardHandler) recentActivity() []gin.H {
	var recentClients []models.Client
	h.db.Preload("AssignedStaff").Order("created_at desc").Limit(5).Find(&recentClients)

	var recentPaid []models.Installment
	h.db.Where("status = ?", models.InstallmentPaid).Order("paid_date desc").Limit(5).Find(&recentPaid)

	activity := make([]gin.H, 0, len(recentClients)+len(recentPaid))
	for _, client := range recentClients {
		staffName := "Admin"
		if client.AssignedStaff != nil {
			staffName = client.AssignedStaff.Name
		}
		activity = append(activity, gin.H{
			"type":   "client",
			"name":   "New Client Added",
			"user":   client.Name,
			"staff":  staffName,
			"time":   client.CreatedAt,
			"amount": "-",
		})
	}
	for _, inst := range recentPaid {
		var client models.Client
		h.db.First(&client, inst.ClientID)
		activity = append(activity, gin.H{
			"type":   "payment",
			"name":   "Payment Received",
			"user":   client.Name,
			"staff":  "System",
			"time":   inst.PaidDate,
			"amount": fmt.Sprintf("$%s", inst.Amount.StringFixed(2)),
		})
	}
	if len(activity) > 5 {
		activity = activity[:5]
	}
	return activity
}
