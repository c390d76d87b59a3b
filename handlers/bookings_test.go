package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/loanpilot/models"
)

func TestCreateBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	handler := NewBookingHandler(db)
	router := gin.Default()
	router.POST("/bookings", handler.Create)

	post := func(body CreateBookingRequest) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/bookings", bytes.NewBuffer(raw))
		router.ServeHTTP(w, req)
		return w
	}

	booking := CreateBookingRequest{
		Name:     "John Doe",
		Email:    "john@example.com",
		Phone:    "9876543210",
		Date:     "2024-03-15",
		TimeSlot: "10:00 AM",
	}

	t.Run("Valid Booking", func(t *testing.T) {
		w := post(booking)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Booking request submitted successfully")

		var saved models.Booking
		assert.NoError(t, db.First(&saved).Error)
		assert.NotEmpty(t, saved.Reference)
		assert.Equal(t, models.BookingPending, saved.Status)
	})

	t.Run("Duplicate Slot Conflicts", func(t *testing.T) {
		w := post(booking)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already booked")
	})

	t.Run("Blocked Date Rejected", func(t *testing.T) {
		blocked := models.Availability{
			Date:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
			IsBlocked: true,
		}
		assert.NoError(t, db.Create(&blocked).Error)

		b := booking
		b.Date = "2024-03-20"
		w := post(b)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not available")
	})
}

func TestAvailableSlots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	taken := models.Booking{
		Reference: "ref-1",
		Name:      "Jane",
		Email:     "jane@example.com",
		Phone:     "1",
		Date:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Interest:  "General Inquiry",
		TimeSlot:  "09:00 AM",
		Status:    models.BookingConfirmed,
	}
	assert.NoError(t, db.Create(&taken).Error)

	handler := NewBookingHandler(db)
	router := gin.Default()
	router.GET("/bookings/available-slots", handler.AvailableSlots)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/bookings/available-slots?date=2024-03-15", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "09:00 AM")
	assert.Contains(t, w.Body.String(), "10:00 AM")
}
