package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/loanpilot/ledger"
	"github.com/yourusername/loanpilot/models"
	"github.com/yourusername/loanpilot/notify"
	"github.com/yourusername/loanpilot/store"
)

// Scheduler runs the daily reminder scan: it marks overdue
// installments and emails clients whose installments are due soon, due
// today or freshly overdue. It only runs when told to; wiring decides
// the cadence.
type Scheduler struct {
	ledger   *ledger.Ledger
	store    store.Store
	notifier notify.Notifier
	interval time.Duration
	now      func() time.Time
}

func New(l *ledger.Ledger, s store.Store, n notify.Notifier, interval time.Duration) *Scheduler {
	return &Scheduler{
		ledger:   l,
		store:    s,
		notifier: n,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Run executes the scan every interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				log.Printf("Reminder scan failed: %v", err)
			}
		}
	}
}

// RunOnce performs a single scan. Overdue marking happens first so the
// overdue alerts see fresh statuses. Returns the number of reminders
// sent; notification failures are not errors.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	marked, err := s.ledger.MarkOverdue(ctx)
	if err != nil {
		return 0, fmt.Errorf("mark overdue: %w", err)
	}
	if marked > 0 {
		log.Printf("Marked %d installments overdue", marked)
	}

	today := ledger.Midnight(s.now())
	window, err := s.store.Installments().UnpaidDueBetween(ctx, today.AddDate(0, 0, -1), today.AddDate(0, 0, 4))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, inst := range window {
		due := ledger.Midnight(inst.DueDate)

		var category string
		switch {
		case due.Equal(today.AddDate(0, 0, 3)):
			category = models.CategoryDueSoon
		case due.Equal(today):
			category = models.CategoryDueToday
		case due.Equal(today.AddDate(0, 0, -1)):
			category = models.CategoryOverdue
		default:
			continue
		}

		if s.remind(ctx, inst, category, due) {
			sent++
		}
	}

	return sent, nil
}

// TriggerAll sends a reminder to every client with an unpaid
// installment due within the next three days or already overdue,
// regardless of the exact-day rules RunOnce applies. Backs the manual
// bulk trigger endpoint.
func (s *Scheduler) TriggerAll(ctx context.Context, clientIDs map[uint]bool) (int, error) {
	today := ledger.Midnight(s.now())

	overdue, err := s.store.Installments().UnpaidDueBefore(ctx, today)
	if err != nil {
		return 0, err
	}
	upcoming, err := s.store.Installments().UnpaidDueBetween(ctx, today, today.AddDate(0, 0, 4))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, inst := range append(overdue, upcoming...) {
		if clientIDs != nil && !clientIDs[inst.ClientID] {
			continue
		}
		due := ledger.Midnight(inst.DueDate)

		var category string
		switch {
		case due.Before(today):
			category = models.CategoryOverdue
		case due.Equal(today):
			category = models.CategoryDueToday
		default:
			category = models.CategoryDueSoon
		}

		if s.remind(ctx, inst, category, due) {
			sent++
		}
	}

	return sent, nil
}

func (s *Scheduler) remind(ctx context.Context, inst models.Installment, category string, due time.Time) bool {
	client, err := s.store.Clients().ByID(ctx, inst.ClientID)
	if err != nil {
		log.Printf("Reminder skipped, client %d not found: %v", inst.ClientID, err)
		return false
	}
	if client.Email == "" {
		return false
	}

	amount := inst.Amount.StringFixed(2)
	dueStr := due.Format("02 Jan 2006")

	var message string
	switch category {
	case models.CategoryDueSoon:
		message = fmt.Sprintf("Hello %s, your payment of $%s is due on %s.", client.Name, amount, dueStr)
	case models.CategoryDueToday:
		message = fmt.Sprintf("URGENT: Hello %s, your payment of $%s is due TODAY.", client.Name, amount)
	default:
		message = fmt.Sprintf("OVERDUE ALERT: %s, your payment of $%s was due on %s. Please pay immediately.", client.Name, amount, dueStr)
	}

	subject := fmt.Sprintf("Payment Reminder: %s", category)
	return s.notifier.Notify(ctx, client, category, subject, message)
}
