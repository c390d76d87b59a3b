package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/loanpilot/config"
	"github.com/yourusername/loanpilot/models"
	"github.com/yourusername/loanpilot/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEmailNotifierWithoutCredentials(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, config.Migrate(db))

	st := store.New(db)
	n := NewEmailNotifier("smtp.example.com", "587", "", "", st.Notifications())

	client := &models.Client{Name: "John", Email: "john@example.com"}
	ok := n.Notify(context.Background(), client, models.CategoryDueToday, "Reminder", "Pay up")
	assert.False(t, ok)

	// nothing is logged when the send is skipped outright
	var count int64
	db.Model(&models.NotificationLog{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestNoopNotifier(t *testing.T) {
	client := &models.Client{Name: "John", Email: "john@example.com"}
	ok := Noop{}.Notify(context.Background(), client, models.CategoryManual, "s", "m")
	assert.False(t, ok)
}
