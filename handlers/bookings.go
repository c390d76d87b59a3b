package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/models"
	"gorm.io/gorm"
)

type BookingHandler struct {
	db *gorm.DB
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{db: db}
}

// The slots offered for client visits.
var timeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM",
}

type CreateBookingRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
	Date     string `json:"date" binding:"required"`
	Interest string `json:"interest"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

// Create books a visit slot. Public endpoint; rejects blocked dates and
// already-taken slots.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}
	date = ledger.Midnight(date)

	var availability models.Availability
	if err := h.db.Where("date = ?", date).First(&availability).Error; err == nil && availability.IsBlocked {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This date is not available for booking."})
		return
	}

	var existing models.Booking
	if err := h.db.Where("date = ? AND time_slot = ?", date, req.TimeSlot).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This time slot is already booked."})
		return
	}

	interest := req.Interest
	if interest == "" {
		interest = "General Inquiry"
	}

	booking := models.Booking{
		Reference: uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Date:      date,
		Interest:  interest,
		TimeSlot:  req.TimeSlot,
		Status:    models.BookingPending,
	}
	if err := h.db.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking request submitted successfully",
		"booking": booking,
	})
}

// List returns all bookings, soonest first. Admin only.
func (h *BookingHandler) List(c *gin.Context) {
	var bookings []models.Booking
	if err := h.db.Order("date asc").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Confirmed Completed Cancelled"`
}

// UpdateStatus patches a booking's status. Admin only.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var booking models.Booking
	if err := h.db.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	booking.Status = req.Status
	if err := h.db.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// AvailableSlots lists the free time slots for a date.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter must be in YYYY-MM-DD format"})
		return
	}
	date = ledger.Midnight(date)

	var availability models.Availability
	if err := h.db.Where("date = ?", date).First(&availability).Error; err == nil && availability.IsBlocked {
		c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "slots": []string{}, "blocked": true})
		return
	}

	var taken []models.Booking
	h.db.Where("date = ? AND status <> ?", date, models.BookingCancelled).Find(&taken)

	takenSlots := make(map[string]bool, len(taken))
	for _, b := range taken {
		takenSlots[b.TimeSlot] = true
	}

	free := make([]string, 0, len(timeSlots))
	for _, slot := range timeSlots {
		if !takenSlots[slot] {
			free = append(free, slot)
		}
	}

	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "slots": free, "blocked": false})
}

type SetAvailabilityRequest struct {
	Date      string `json:"date" binding:"required"`
	IsBlocked bool   `json:"is_blocked"`
	Reason    string `json:"reason"`
}

// SetAvailability blocks or unblocks a date for bookings. Admin only.
func (h *BookingHandler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}
	date = ledger.Midnight(date)

	var availability models.Availability
	if err := h.db.Where("date = ?", date).First(&availability).Error; err != nil {
		availability = models.Availability{Date: date}
	}
	availability.IsBlocked = req.IsBlocked
	availability.Reason = req.Reason

	if err := h.db.Save(&availability).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability"})
		return
	}

	c.JSON(http.StatusOK, availability)
}

type CreateInquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// CreateInquiry stores a contact-form message. Public endpoint.
func (h *BookingHandler) CreateInquiry(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry := models.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  "New",
	}
	if err := h.db.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Inquiry submitted successfully",
		"inquiry": inquiry,
	})
}

// ListInquiries returns all contact inquiries, newest first. Admin only.
func (h *BookingHandler) ListInquiries(c *gin.Context) {
	var inquiries []models.Inquiry
	if err := h.db.Order("created_at desc").Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inquiries"})
		return
	}
	c.JSON(http.StatusOK, inquiries)
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=New Read Resolved"`
}

// UpdateInquiryStatus patches an inquiry's status. Admin only.
func (h *BookingHandler) UpdateInquiryStatus(c *gin.Context) {
	var req UpdateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var inquiry models.Inquiry
	if err := h.db.First(&inquiry, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		return
	}

	inquiry.Status = req.Status
	if err := h.db.Save(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inquiry"})
		return
	}

	c.JSON(http.StatusOK, inquiry)
}
