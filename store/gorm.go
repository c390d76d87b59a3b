package store

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/loanpilot/models"
	"gorm.io/gorm"
)

// New returns a gorm-backed Store.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Clients() ClientRepo             { return &clientRepo{db: s.db} }
func (s *gormStore) Loans() LoanRepo                 { return &loanRepo{db: s.db} }
func (s *gormStore) Installments() InstallmentRepo   { return &installmentRepo{db: s.db} }
func (s *gormStore) Notifications() NotificationRepo { return &notificationRepo{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type clientRepo struct {
	db *gorm.DB
}

func (r *clientRepo) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepo) ByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *clientRepo) Save(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Client{}, id).Error
}

type loanRepo struct {
	db *gorm.DB
}

func (r *loanRepo) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *loanRepo) ByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.WithContext(ctx).First(&loan, id).Error; err != nil {
		return nil, translate(err)
	}
	return &loan, nil
}

func (r *loanRepo) ByClient(ctx context.Context, clientID uint) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&loan).Error; err != nil {
		return nil, translate(err)
	}
	return &loan, nil
}

func (r *loanRepo) Save(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func (r *loanRepo) DeleteByClient(ctx context.Context, clientID uint) error {
	return r.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&models.Loan{}).Error
}

type installmentRepo struct {
	db *gorm.DB
}

func (r *installmentRepo) CreateBatch(ctx context.Context, installments []models.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&installments).Error
}

func (r *installmentRepo) Create(ctx context.Context, installment *models.Installment) error {
	return r.db.WithContext(ctx).Create(installment).Error
}

func (r *installmentRepo) Save(ctx context.Context, installment *models.Installment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}

func (r *installmentRepo) ByLoan(ctx context.Context, loanID uint) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("installment_no asc").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepo) ByClient(ctx context.Context, clientID uint) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("installment_no asc").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepo) PendingByLoan(ctx context.Context, loanID uint) ([]models.Installment, error) {
	return r.byLoanStatus(ctx, loanID, "status = ?", models.InstallmentPending)
}

func (r *installmentRepo) PaidByLoan(ctx context.Context, loanID uint) ([]models.Installment, error) {
	return r.byLoanStatus(ctx, loanID, "status = ?", models.InstallmentPaid)
}

func (r *installmentRepo) NonPendingByLoan(ctx context.Context, loanID uint) ([]models.Installment, error) {
	return r.byLoanStatus(ctx, loanID, "status <> ?", models.InstallmentPending)
}

func (r *installmentRepo) byLoanStatus(ctx context.Context, loanID uint, cond string, status string) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Where(cond, status).
		Order("installment_no asc").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepo) DeletePendingByLoan(ctx context.Context, loanID uint) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ? AND status = ?", loanID, models.InstallmentPending).
		Delete(&models.Installment{}).Error
}

func (r *installmentRepo) DeleteByClient(ctx context.Context, clientID uint) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&models.Installment{}).Error
}

func (r *installmentRepo) UnpaidDueBefore(ctx context.Context, cutoff time.Time) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("status <> ? AND due_date < ?", models.InstallmentPaid, cutoff).
		Order("due_date asc").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepo) UnpaidDueBetween(ctx context.Context, from, to time.Time) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("status <> ? AND due_date >= ? AND due_date < ?", models.InstallmentPaid, from, to).
		Order("due_date asc").
		Find(&installments).Error
	return installments, err
}

type notificationRepo struct {
	db *gorm.DB
}

func (r *notificationRepo) Create(ctx context.Context, log *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
