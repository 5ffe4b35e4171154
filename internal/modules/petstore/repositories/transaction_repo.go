package repositories

import (
	"context"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"gorm.io/gorm"
)

// TransactionRepo is the record-store boundary for the transactions table. The
// service layer only ever sees this interface; swapping the backing store means
// swapping this implementation.
type TransactionRepo interface {
	Insert(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	Update(ctx context.Context, transaction *models.Transaction) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (*models.StatusCounts, error)
}

type transactionRepo struct {
	db *gorm.DB
}

// NewTransactionRepo creates a new transaction repository
func NewTransactionRepo(db *gorm.DB) TransactionRepo {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Insert(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepo) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// List returns transactions most recent first. Filters are optional.
func (r *transactionRepo) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("transaction_type = ?", filter.Type)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *transactionRepo) Update(ctx context.Context, transaction *models.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *transactionRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepo) CountByStatus(ctx context.Context) (*models.StatusCounts, error) {
	counts := &models.StatusCounts{}
	base := r.db.WithContext(ctx).Model(&models.Transaction{})

	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusPending).Count(&counts.Pending).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusApproved).Count(&counts.Approved).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusRejected).Count(&counts.Rejected).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
