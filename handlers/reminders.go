package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/loanpilot/middleware"
	"github.com/yourusername/loanpilot/models"
	"github.com/yourusername/loanpilot/reminder"
	"gorm.io/gorm"
)

type ReminderHandler struct {
	db        *gorm.DB
	scheduler *reminder.Scheduler
}

func NewReminderHandler(db *gorm.DB, s *reminder.Scheduler) *ReminderHandler {
	return &ReminderHandler{db: db, scheduler: s}
}

// Logs returns the latest notification log entries, scoped to the
// requesting staff member's clients.
func (h *ReminderHandler) Logs(c *gin.Context) {
	query := h.db.Preload("Client")
	if staffID, scoped := middleware.StaffScope(c); scoped {
		var clientIDs []uint
		h.db.Model(&models.Client{}).Where("assigned_staff_id = ?", staffID).Pluck("id", &clientIDs)
		query = query.Where("client_id IN ?", clientIDs)
	}

	var logs []models.NotificationLog
	if err := query.Order("created_at desc").Limit(50).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Trigger runs the bulk reminder send on demand, scoped for staff.
func (h *ReminderHandler) Trigger(c *gin.Context) {
	var scope map[uint]bool
	if staffID, scoped := middleware.StaffScope(c); scoped {
		var clientIDs []uint
		h.db.Model(&models.Client{}).Where("assigned_staff_id = ?", staffID).Pluck("id", &clientIDs)
		scope = make(map[uint]bool, len(clientIDs))
		for _, id := range clientIDs {
			scope[id] = true
		}
	}

	sent, err := h.scheduler.TriggerAll(c.Request.Context(), scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bulk automation completed.", "sent": sent})
}

type LogManualRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=Email WhatsApp"`
	Message  string `json:"message" binding:"required"`
}

// LogManual records a reminder the operator sent by hand, e.g. through
// a WhatsApp deep link.
func (h *ReminderHandler) LogManual(c *gin.Context) {
	var req LogManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.NotificationLog{
		ClientID: req.ClientID,
		Type:     req.Type,
		Category: models.CategoryManual,
		Message:  req.Message,
		Status:   "Sent",
	}
	if err := h.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Log created"})
}
