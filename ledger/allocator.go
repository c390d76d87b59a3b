package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/loanpilot/models"
	"github.com/yourusername/loanpilot/store"
)

// RecordPayment allocates an incoming payment across the client's
// pending installments oldest-first (waterfall). Whole installments are
// marked Paid; when the remainder no longer covers the next installment
// in full, that installment is split into a Paid part and a new Pending
// part carrying the same number and due date. Anything left after the
// last pending installment becomes an Overpayment row, Paid
// immediately.
//
// The whole read-mutate-recompute sequence runs under a per-loan lock
// inside one transaction, so concurrent payments and crashes cannot
// leave the ledger and loan totals out of step.
func (l *Ledger) RecordPayment(ctx context.Context, clientID uint, amount decimal.Decimal, mode, transactionID string) ([]models.Installment, *models.Loan, error) {
	if !amount.IsPositive() {
		return nil, nil, validationf("payment amount must be positive, got %s", amount)
	}
	if mode == "" {
		mode = models.ModeCash
	}

	loan, err := l.store.Loans().ByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrLoanNotFound
		}
		return nil, nil, err
	}

	unlock := l.locks.acquire(loan.ID)
	defer unlock()

	var processed []models.Installment
	err = l.store.Transaction(ctx, func(tx store.Store) error {
		loan, err = tx.Loans().ByID(ctx, loan.ID)
		if err != nil {
			return err
		}

		pending, err := tx.Installments().PendingByLoan(ctx, loan.ID)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return ErrAlreadySettled
		}

		processed, err = l.allocate(ctx, tx, loan, pending, amount, mode, transactionID)
		if err != nil {
			return err
		}

		return l.recomputeTotals(ctx, tx, loan)
	})
	if err != nil {
		if errors.Is(err, ErrAlreadySettled) {
			return nil, nil, ErrAlreadySettled
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	return processed, loan, nil
}

func (l *Ledger) allocate(ctx context.Context, tx store.Store, loan *models.Loan, pending []models.Installment, amount decimal.Decimal, mode, transactionID string) ([]models.Installment, error) {
	now := l.now()
	remaining := amount
	processed := make([]models.Installment, 0, len(pending))

	for i := range pending {
		if !remaining.IsPositive() {
			break
		}
		inst := pending[i]

		if remaining.LessThan(inst.Amount) {
			// Split: the paid part keeps this row, the rest becomes a
			// fresh Pending row with the same number and due date.
			outstanding := inst.Amount.Sub(remaining)

			inst.Amount = remaining
			inst.Status = models.InstallmentPaid
			inst.PaidDate = &now
			inst.PaymentMode = mode
			inst.TransactionID = transactionID
			if err := tx.Installments().Save(ctx, &inst); err != nil {
				return nil, fmt.Errorf("mark split installment paid: %w", err)
			}

			remainder := models.Installment{
				LoanID:        loan.ID,
				ClientID:      loan.ClientID,
				InstallmentNo: inst.InstallmentNo,
				Amount:        outstanding,
				DueDate:       inst.DueDate,
				Status:        models.InstallmentPending,
				Kind:          models.KindScheduled,
			}
			if err := tx.Installments().Create(ctx, &remainder); err != nil {
				return nil, fmt.Errorf("create split remainder: %w", err)
			}

			processed = append(processed, inst)
			remaining = decimal.Zero
			continue
		}

		remaining = remaining.Sub(inst.Amount)
		inst.Status = models.InstallmentPaid
		inst.PaidDate = &now
		inst.PaymentMode = mode
		inst.TransactionID = transactionID
		if err := tx.Installments().Save(ctx, &inst); err != nil {
			return nil, fmt.Errorf("mark installment paid: %w", err)
		}
		processed = append(processed, inst)
	}

	if remaining.IsPositive() {
		overpayment := models.Installment{
			LoanID:        loan.ID,
			ClientID:      loan.ClientID,
			InstallmentNo: models.OverpaymentNo,
			Amount:        remaining,
			DueDate:       now,
			PaidDate:      &now,
			PaymentMode:   mode,
			Status:        models.InstallmentPaid,
			Kind:          models.KindOverpayment,
			TransactionID: transactionID,
		}
		if err := tx.Installments().Create(ctx, &overpayment); err != nil {
			return nil, fmt.Errorf("create overpayment: %w", err)
		}
		processed = append(processed, overpayment)
	}

	return processed, nil
}

// recomputeTotals rebuilds the loan aggregates from the Paid rows:
// totalPaid is their sum and remainingAmount is always measured against
// totalPayable. A non-positive remainder completes the loan and marks
// the owning client Paid.
func (l *Ledger) recomputeTotals(ctx context.Context, tx store.Store, loan *models.Loan) error {
	paid, err := tx.Installments().PaidByLoan(ctx, loan.ID)
	if err != nil {
		return err
	}

	totalPaid := decimal.Zero
	for _, inst := range paid {
		totalPaid = totalPaid.Add(inst.Amount)
	}

	loan.TotalPaid = totalPaid
	loan.RemainingAmount = loan.TotalPayable.Sub(totalPaid)

	if !loan.RemainingAmount.IsPositive() {
		loan.Status = models.LoanCompleted

		client, err := tx.Clients().ByID(ctx, loan.ClientID)
		if err != nil {
			return err
		}
		client.Status = "Paid"
		if err := tx.Clients().Save(ctx, client); err != nil {
			return err
		}
	}

	return tx.Loans().Save(ctx, loan)
}
