package store

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/loanpilot/models"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// Store bundles the entity repositories the loan lifecycle depends on.
// Transaction runs fn against a store whose writes commit or roll back
// as a unit.
type Store interface {
	Clients() ClientRepo
	Loans() LoanRepo
	Installments() InstallmentRepo
	Notifications() NotificationRepo
	Transaction(ctx context.Context, fn func(Store) error) error
}

type ClientRepo interface {
	Create(ctx context.Context, client *models.Client) error
	ByID(ctx context.Context, id uint) (*models.Client, error)
	Save(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uint) error
}

type LoanRepo interface {
	Create(ctx context.Context, loan *models.Loan) error
	ByID(ctx context.Context, id uint) (*models.Loan, error)
	ByClient(ctx context.Context, clientID uint) (*models.Loan, error)
	Save(ctx context.Context, loan *models.Loan) error
	DeleteByClient(ctx context.Context, clientID uint) error
}

type InstallmentRepo interface {
	CreateBatch(ctx context.Context, installments []models.Installment) error
	Create(ctx context.Context, installment *models.Installment) error
	Save(ctx context.Context, installment *models.Installment) error
	// ByLoan returns every installment of a loan ordered by installment
	// number ascending.
	ByLoan(ctx context.Context, loanID uint) ([]models.Installment, error)
	ByClient(ctx context.Context, clientID uint) ([]models.Installment, error)
	// PendingByLoan returns the open installments of a loan ordered by
	// installment number ascending (waterfall order).
	PendingByLoan(ctx context.Context, loanID uint) ([]models.Installment, error)
	PaidByLoan(ctx context.Context, loanID uint) ([]models.Installment, error)
	NonPendingByLoan(ctx context.Context, loanID uint) ([]models.Installment, error)
	DeletePendingByLoan(ctx context.Context, loanID uint) error
	DeleteByClient(ctx context.Context, clientID uint) error
	// UnpaidDueBefore returns Pending and Overdue installments due
	// strictly before the cutoff.
	UnpaidDueBefore(ctx context.Context, cutoff time.Time) ([]models.Installment, error)
	// UnpaidDueBetween returns Pending and Overdue installments due in
	// [from, to).
	UnpaidDueBetween(ctx context.Context, from, to time.Time) ([]models.Installment, error)
}

type NotificationRepo interface {
	Create(ctx context.Context, log *models.NotificationLog) error
}
