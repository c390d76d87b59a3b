package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/models"
	"github.com/yourusername/loanpilot/store"
)

func TestCreateClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	l := ledger.New(store.New(db))
	staff := seedStaffUser(t, db, "Sarah", "sarah@example.com")

	handler := NewClientHandler(db, l)
	router := gin.Default()
	router.Use(asRole(staff.ID, "staff"))
	router.POST("/clients", handler.Create)

	post := func(body interface{}) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/clients", bytes.NewBuffer(raw))
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Valid Request", func(t *testing.T) {
		w := post(CreateClientRequest{
			Name:                 "John Doe",
			Email:                "john@example.com",
			Phone:                "9876543210",
			AssignedStaffID:      staff.ID,
			LoanAmount:           10000,
			LoanStartDate:        "2023-10-01",
			InterestRate:         5,
			InstallmentFrequency: models.FrequencyWeekly,
			InterestType:         models.InterestInstallment,
			Tenure:               16,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Client created successfully")

		var loan models.Loan
		assert.NoError(t, db.First(&loan).Error)
		assert.Equal(t, "18000", loan.TotalPayable.String())

		var count int64
		db.Model(&models.Installment{}).Count(&count)
		assert.EqualValues(t, 16, count)
	})

	t.Run("Missing Required Fields", func(t *testing.T) {
		w := post(CreateClientRequest{Name: "No Loan"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Bad Date Format", func(t *testing.T) {
		w := post(CreateClientRequest{
			Name:            "Bad Date",
			Email:           "bad@example.com",
			Phone:           "1",
			AssignedStaffID: staff.ID,
			LoanAmount:      1000,
			LoanStartDate:   "01/10/2023",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListClientsStaffScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	l := ledger.New(store.New(db))
	owner := seedStaffUser(t, db, "Owner", "owner@example.com")
	other := seedStaffUser(t, db, "Other", "other@example.com")
	seedClientWithLoan(t, db, l, owner.ID, "john@example.com")

	handler := NewClientHandler(db, l)

	list := func(staffID uint, role string) *httptest.ResponseRecorder {
		router := gin.Default()
		router.Use(asRole(staffID, role))
		router.GET("/clients", handler.List)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/clients", nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Assigned Staff Sees Client", func(t *testing.T) {
		w := list(owner.ID, "staff")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
		assert.Contains(t, w.Body.String(), "next_due")
	})

	t.Run("Other Staff Sees Nothing", func(t *testing.T) {
		w := list(other.ID, "staff")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":0`)
	})

	t.Run("Admin Sees Everything", func(t *testing.T) {
		w := list(99, "admin")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
	})
}

func TestUpdateClientRegeneratesSchedule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	l := ledger.New(store.New(db))
	staff := seedStaffUser(t, db, "Sarah", "sarah@example.com")
	client := seedClientWithLoan(t, db, l, staff.ID, "john@example.com")

	handler := NewClientHandler(db, l)
	router := gin.Default()
	router.Use(asRole(staff.ID, "staff"))
	router.PUT("/clients/:id", handler.Update)

	rate := 10.0
	raw, _ := json.Marshal(UpdateClientRequest{InterestRate: &rate})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/clients/%d", client.ID), bytes.NewBuffer(raw))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var loan models.Loan
	assert.NoError(t, db.Where("client_id = ?", client.ID).First(&loan).Error)
	assert.Equal(t, "26000", loan.TotalPayable.String())

	var pending []models.Installment
	db.Where("client_id = ? AND status = ?", client.ID, models.InstallmentPending).Find(&pending)
	assert.Len(t, pending, 16)
	assert.Equal(t, "1625", pending[0].Amount.String())
}

func TestUpdateClientWithoutLoanRejectsTermFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	l := ledger.New(store.New(db))
	staff := seedStaffUser(t, db, "Sarah", "sarah@example.com")

	// a bare client row, no loan attached
	client := models.Client{Name: "Jane Doe", Email: "jane@example.com", Phone: "1112223333", AssignedStaffID: staff.ID, Status: "Active"}
	assert.NoError(t, db.Create(&client).Error)

	handler := NewClientHandler(db, l)
	router := gin.Default()
	router.Use(asRole(staff.ID, "staff"))
	router.PUT("/clients/:id", handler.Update)

	put := func(body any) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", fmt.Sprintf("/clients/%d", client.ID), bytes.NewBuffer(raw))
		router.ServeHTTP(w, req)
		return w
	}

	rate := 10.0
	w := put(UpdateClientRequest{Name: "Renamed", InterestRate: &rate})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no loan on file")

	// nothing was saved on the rejected request
	var fresh models.Client
	assert.NoError(t, db.First(&fresh, client.ID).Error)
	assert.Equal(t, "Jane Doe", fresh.Name)

	// plain profile edits still go through
	w = put(UpdateClientRequest{Phone: "9998887777"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, db.First(&fresh, client.ID).Error)
	assert.Equal(t, "9998887777", fresh.Phone)
}
