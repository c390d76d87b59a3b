package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/loanpilot/config"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testCtx() context.Context {
	return context.Background()
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, config.Migrate(db))
	return db
}

// asRole injects auth context the way JwtAuthMiddleware would.
func asRole(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}

func seedStaffUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, PasswordHash: "x", Role: "staff", Status: "Active"}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

func seedClientWithLoan(t *testing.T, db *gorm.DB, l *ledger.Ledger, staffID uint, email string) *models.Client {
	t.Helper()
	client, _, _, err := l.CreateClientWithLoan(testCtx(), ledger.NewClientLoan{
		Name:            "John Doe",
		Email:           email,
		Phone:           "9876543210",
		AssignedStaffID: staffID,
		Principal:       decimal.NewFromInt(10000),
		Rate:            decimal.NewFromInt(5),
		Frequency:       models.FrequencyWeekly,
		InterestType:    models.InterestInstallment,
		Tenure:          16,
		StartDate:       time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	return client
}
