package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/loanpilot/finance"
	"github.com/yourusername/loanpilot/models"
	"github.com/yourusername/loanpilot/store"
)

// Ledger is the loan lifecycle controller: it creates clients with
// their loans and schedules, allocates payments, regenerates schedules
// on term edits and keeps loan aggregates consistent with the
// installment rows.
type Ledger struct {
	store store.Store
	locks *loanLocks
	now   func() time.Time
}

func New(s store.Store) *Ledger {
	return &Ledger{
		store: s,
		locks: newLoanLocks(),
		now:   time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// NewClientLoan is the input for creating a client together with a
// loan and its repayment schedule.
type NewClientLoan struct {
	Name            string
	Email           string
	Phone           string
	AssignedStaffID uint
	Principal       decimal.Decimal
	Rate            decimal.Decimal
	Frequency       string
	InterestType    string
	Tenure          int
	DurationWeeks   int
	StartDate       time.Time
}

// CreateClientWithLoan creates the client, its loan and the full
// Pending schedule in one transaction. Either everything exists
// afterwards or nothing does.
func (l *Ledger) CreateClientWithLoan(ctx context.Context, in NewClientLoan) (*models.Client, *models.Loan, []models.Installment, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" {
		return nil, nil, nil, validationf("name, email and phone are required")
	}
	if in.Frequency == "" {
		in.Frequency = models.FrequencyWeekly
	}
	if in.InterestType == "" {
		in.InterestType = models.InterestInstallment
	}

	figures, err := finance.Compute(finance.Terms{
		Principal:     in.Principal,
		Rate:          in.Rate,
		Frequency:     in.Frequency,
		InterestType:  in.InterestType,
		Tenure:        in.Tenure,
		DurationWeeks: in.DurationWeeks,
	})
	if err != nil {
		return nil, nil, nil, validationf("invalid loan terms: %v", err)
	}

	client := &models.Client{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		AssignedStaffID: in.AssignedStaffID,
		Status:          "Active",
	}
	loan := &models.Loan{
		LoanAmount:        in.Principal,
		LoanStartDate:     in.StartDate,
		Tenure:            figures.Tenure,
		InterestRate:      in.Rate,
		Frequency:         in.Frequency,
		InterestType:      in.InterestType,
		InstallmentAmount: figures.InstallmentAmount,
		TotalInterest:     figures.TotalInterest,
		TotalPayable:      figures.TotalPayable,
		TotalPaid:         decimal.Zero,
		RemainingAmount:   figures.TotalPayable,
		Status:            models.LoanActive,
	}

	var installments []models.Installment
	err = l.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.Clients().Create(ctx, client); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		loan.ClientID = client.ID
		if err := tx.Loans().Create(ctx, loan); err != nil {
			return fmt.Errorf("create loan: %w", err)
		}

		schedule := finance.GenerateSchedule(figures.TotalPayable, in.StartDate, in.Frequency, figures.Tenure)
		installments = make([]models.Installment, 0, len(schedule))
		for _, entry := range schedule {
			installments = append(installments, models.Installment{
				LoanID:        loan.ID,
				ClientID:      client.ID,
				InstallmentNo: entry.InstallmentNo,
				Amount:        entry.Amount,
				DueDate:       entry.DueDate,
				Status:        entry.Status,
				Kind:          models.KindScheduled,
			})
		}
		if err := tx.Installments().CreateBatch(ctx, installments); err != nil {
			return fmt.Errorf("create schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	return client, loan, installments, nil
}

// LoanPatch carries the fields of a term edit. Nil fields keep their
// current value.
type LoanPatch struct {
	LoanAmount    *decimal.Decimal
	InterestRate  *decimal.Decimal
	Frequency     *string
	InterestType  *string
	LoanStartDate *time.Time
	Tenure        *int
	DurationWeeks *int
}

func (p LoanPatch) changesTerms() bool {
	return p.LoanAmount != nil || p.InterestRate != nil || p.Frequency != nil ||
		p.InterestType != nil || p.Tenure != nil || p.DurationWeeks != nil ||
		p.LoanStartDate != nil
}

// EditLoanTerms recomputes the loan's figures from the patch merged
// over its current terms, then regenerates the schedule: Pending rows
// are deleted and replaced, while Paid and Overdue rows are kept as
// history. Regenerated entries at or below the highest settled
// installment number are discarded, so settled positions are never
// reissued. Regenerated due dates for later positions may not line up
// with what was partially paid under the old schedule; that is accepted
// rather than reconciled.
func (l *Ledger) EditLoanTerms(ctx context.Context, loanID uint, patch LoanPatch) (*models.Loan, error) {
	loan, err := l.store.Loans().ByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	if !patch.changesTerms() {
		return loan, nil
	}

	unlock := l.locks.acquire(loan.ID)
	defer unlock()

	principal := loan.LoanAmount
	if patch.LoanAmount != nil {
		principal = *patch.LoanAmount
	}
	rate := loan.InterestRate
	if patch.InterestRate != nil {
		rate = *patch.InterestRate
	}
	frequency := loan.Frequency
	if patch.Frequency != nil {
		frequency = *patch.Frequency
	}
	interestType := loan.InterestType
	if patch.InterestType != nil {
		interestType = *patch.InterestType
	}
	startDate := loan.LoanStartDate
	if patch.LoanStartDate != nil {
		startDate = *patch.LoanStartDate
	}
	tenure := 0
	if patch.Tenure != nil {
		tenure = *patch.Tenure
	}
	durationWeeks := 0
	if patch.DurationWeeks != nil {
		durationWeeks = *patch.DurationWeeks
	}
	if tenure == 0 && durationWeeks == 0 {
		tenure = loan.Tenure
	}

	figures, err := finance.Compute(finance.Terms{
		Principal:     principal,
		Rate:          rate,
		Frequency:     frequency,
		InterestType:  interestType,
		Tenure:        tenure,
		DurationWeeks: durationWeeks,
	})
	if err != nil {
		return nil, validationf("invalid loan terms: %v", err)
	}

	err = l.store.Transaction(ctx, func(tx store.Store) error {
		loan, err = tx.Loans().ByID(ctx, loanID)
		if err != nil {
			return err
		}

		loan.LoanAmount = principal
		loan.LoanStartDate = startDate
		loan.InterestRate = rate
		loan.Frequency = frequency
		loan.InterestType = interestType
		loan.Tenure = figures.Tenure
		loan.InstallmentAmount = figures.InstallmentAmount
		loan.TotalInterest = figures.TotalInterest
		loan.TotalPayable = figures.TotalPayable
		loan.RemainingAmount = figures.TotalPayable.Sub(loan.TotalPaid)
		if err := tx.Loans().Save(ctx, loan); err != nil {
			return err
		}

		if err := tx.Installments().DeletePendingByLoan(ctx, loan.ID); err != nil {
			return err
		}

		settled, err := tx.Installments().NonPendingByLoan(ctx, loan.ID)
		if err != nil {
			return err
		}
		maxSettled := 0
		for _, inst := range settled {
			// Overpayment rows carry a sentinel number outside the
			// schedule and must not mask real positions.
			if inst.Kind == models.KindOverpayment {
				continue
			}
			if inst.InstallmentNo > maxSettled {
				maxSettled = inst.InstallmentNo
			}
		}

		schedule := finance.GenerateSchedule(figures.TotalPayable, startDate, frequency, figures.Tenure)
		fresh := make([]models.Installment, 0, len(schedule))
		for _, entry := range schedule {
			if entry.InstallmentNo <= maxSettled {
				continue
			}
			fresh = append(fresh, models.Installment{
				LoanID:        loan.ID,
				ClientID:      loan.ClientID,
				InstallmentNo: entry.InstallmentNo,
				Amount:        entry.Amount,
				DueDate:       entry.DueDate,
				Status:        entry.Status,
				Kind:          models.KindScheduled,
			})
		}
		return tx.Installments().CreateBatch(ctx, fresh)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	return loan, nil
}

// DeleteClient removes a client together with its loan and all
// installment history.
func (l *Ledger) DeleteClient(ctx context.Context, clientID uint) error {
	if _, err := l.store.Clients().ByID(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	return l.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.Installments().DeleteByClient(ctx, clientID); err != nil {
			return err
		}
		if err := tx.Loans().DeleteByClient(ctx, clientID); err != nil {
			return err
		}
		return tx.Clients().Delete(ctx, clientID)
	})
}
