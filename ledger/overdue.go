package ledger

import (
	"context"
	"time"

	"github.com/yourusername/loanpilot/models"
)

// MarkOverdue flips Pending installments whose due date has passed to
// Overdue. Each loan's rows are updated under that loan's lock, the
// same one the allocator takes, so the scan never races a payment.
// Returns the number of installments marked.
func (l *Ledger) MarkOverdue(ctx context.Context) (int, error) {
	today := Midnight(l.now())

	due, err := l.store.Installments().UnpaidDueBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	byLoan := make(map[uint][]models.Installment)
	for _, inst := range due {
		if inst.Status != models.InstallmentPending {
			continue
		}
		byLoan[inst.LoanID] = append(byLoan[inst.LoanID], inst)
	}

	marked := 0
	for loanID, insts := range byLoan {
		unlock := l.locks.acquire(loanID)
		for i := range insts {
			insts[i].Status = models.InstallmentOverdue
			if err := l.store.Installments().Save(ctx, &insts[i]); err != nil {
				unlock()
				return marked, err
			}
			marked++
		}
		unlock()
	}

	return marked, nil
}

// Midnight truncates t to the start of its day in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
