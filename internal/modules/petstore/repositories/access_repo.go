package repositories

import (
	"context"

	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"gorm.io/gorm"
)

// AccessRepo persists user role/permission assignments.
type AccessRepo interface {
	List(ctx context.Context) ([]models.UserAccess, error)
	GetByID(ctx context.Context, id string) (*models.UserAccess, error)
	GetByEmail(ctx context.Context, email string) (*models.UserAccess, error)
	// Replace overwrites the whole stored assignment for the record's id.
	// No merge semantics: the caller supplies the complete new state.
	Replace(ctx context.Context, access *models.UserAccess) error
	Insert(ctx context.Context, access *models.UserAccess) error
}

type accessRepo struct {
	db *gorm.DB
}

// NewAccessRepo creates a new access repository
func NewAccessRepo(db *gorm.DB) AccessRepo {
	return &accessRepo{db: db}
}

func (r *accessRepo) List(ctx context.Context) ([]models.UserAccess, error) {
	var assignments []models.UserAccess
	err := r.db.WithContext(ctx).Order("email ASC").Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *accessRepo) GetByID(ctx context.Context, id string) (*models.UserAccess, error) {
	var access models.UserAccess
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&access).Error
	if err != nil {
		return nil, err
	}
	return &access, nil
}

func (r *accessRepo) GetByEmail(ctx context.Context, email string) (*models.UserAccess, error) {
	var access models.UserAccess
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&access).Error
	if err != nil {
		return nil, err
	}
	return &access, nil
}

func (r *accessRepo) Replace(ctx context.Context, access *models.UserAccess) error {
	return r.db.WithContext(ctx).Save(access).Error
}

func (r *accessRepo) Insert(ctx context.Context, access *models.UserAccess) error {
	return r.db.WithContext(ctx).Create(access).Error
}
