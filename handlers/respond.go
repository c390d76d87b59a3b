package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/store"
)

// respondError maps ledger and store errors to HTTP responses. Internal
// details are never exposed to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case ledger.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrLoanNotFound),
		errors.Is(err, ledger.ErrClientNotFound),
		errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrAlreadySettled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrIntegrity):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed, no changes were applied. Please try again."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
