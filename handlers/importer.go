package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/models"
	"gorm.io/gorm"
)

type ImportHandler struct {
	db     *gorm.DB
	ledger *ledger.Ledger
}

func NewImportHandler(db *gorm.DB, l *ledger.Ledger) *ImportHandler {
	return &ImportHandler{db: db, ledger: l}
}

var importHeader = []string{
	"Name", "Email", "Phone", "Loan Amount", "Interest Rate (%)",
	"Installment Frequency", "Loan Duration (Weeks)",
	"Loan Start Date (YYYY-MM-DD)", "Assigned Staff (Name)",
}

// Template serves a sample CSV for the bulk import format.
func (h *ImportHandler) Template(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="loan_import_template.csv"`)
	c.Header("Content-Type", "text/csv")

	w := csv.NewWriter(c.Writer)
	w.Write(importHeader)
	w.Write([]string{"John Doe", "john@example.com", "9876543210", "10000", "5", "Weekly", "12", "2023-10-01", "Admin"})
	w.Write([]string{"Jane Smith", "jane@example.com", "9123456780", "5000", "10", "Bi-Weekly", "8", "2023-11-15", "Sarah Jones"})
	w.Flush()
}

// ImportCSV bulk-creates clients with loans and schedules from an
// uploaded CSV file. Each row goes through the same creation path as
// the single-client endpoint; row failures are reported, not fatal.
func (h *ImportHandler) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid CSV file: %v", err)})
		return
	}
	if len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file has no data rows"})
		return
	}

	batchID := uuid.NewString()
	imported := 0
	var rowErrors []gin.H

	for i, row := range rows[1:] {
		rowNo := i + 2 // 1-based, counting the header
		if err := h.importRow(c, row); err != nil {
			rowErrors = append(rowErrors, gin.H{"row": rowNo, "error": err.Error()})
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Import completed. %d clients imported, %d rows failed.", imported, len(rowErrors)),
		"batch_id": batchID,
		"imported": imported,
		"failed":   len(rowErrors),
		"errors":   rowErrors,
	})
}

func (h *ImportHandler) importRow(c *gin.Context, row []string) error {
	if len(row) < 8 {
		return fmt.Errorf("expected at least 8 columns, got %d", len(row))
	}

	name := strings.TrimSpace(row[0])
	email := strings.TrimSpace(row[1])
	phone := strings.TrimSpace(row[2])

	amount, err := decimal.NewFromString(strings.TrimSpace(row[3]))
	if err != nil {
		return fmt.Errorf("invalid loan amount %q", row[3])
	}

	rate := decimal.Zero
	if strings.TrimSpace(row[4]) != "" {
		rate, err = decimal.NewFromString(strings.TrimSpace(row[4]))
		if err != nil {
			return fmt.Errorf("invalid interest rate %q", row[4])
		}
	}

	frequency := strings.TrimSpace(row[5])
	if frequency == "" {
		frequency = models.FrequencyWeekly
	}

	durationWeeks := 0
	if strings.TrimSpace(row[6]) != "" {
		durationWeeks, err = strconv.Atoi(strings.TrimSpace(row[6]))
		if err != nil {
			return fmt.Errorf("invalid loan duration %q", row[6])
		}
	}

	startDate, err := time.Parse(dateLayout, strings.TrimSpace(row[7]))
	if err != nil {
		return fmt.Errorf("invalid loan start date %q", row[7])
	}

	staffName := ""
	if len(row) > 8 {
		staffName = strings.TrimSpace(row[8])
	}
	staffID, err := h.resolveStaff(staffName)
	if err != nil {
		return err
	}

	_, _, _, err = h.ledger.CreateClientWithLoan(c.Request.Context(), ledger.NewClientLoan{
		Name:            name,
		Email:           email,
		Phone:           phone,
		AssignedStaffID: staffID,
		Principal:       amount,
		Rate:            rate,
		Frequency:       frequency,
		DurationWeeks:   durationWeeks,
		StartDate:       startDate,
	})
	return err
}

// resolveStaff finds the staff user named in the row, falling back to
// the first admin account when the cell is empty or unknown.
func (h *ImportHandler) resolveStaff(name string) (uint, error) {
	if name != "" {
		var user models.User
		if err := h.db.Where("name = ?", name).First(&user).Error; err == nil {
			return user.ID, nil
		}
	}

	var admin models.User
	if err := h.db.Where("role = ?", "admin").Order("id asc").First(&admin).Error; err != nil {
		return 0, fmt.Errorf("no staff named %q and no admin account to assign to", name)
	}
	return admin.ID, nil
}
