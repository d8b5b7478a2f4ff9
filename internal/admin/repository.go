package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/sukalov/shitsu/pkg/db/models"
)

// Repository persists the single admin account row.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find loads the admin row if one exists.
func (r *Repository) Find(ctx context.Context) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Exists reports whether an admin account has been set up.
func (r *Repository) Exists(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the admin row.
func (r *Repository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// UpdatePasswordHash writes a new password hash for the account.
func (r *Repository) UpdatePasswordHash(ctx context.Context, admin *models.Admin, hash string) error {
	return r.db.WithContext(ctx).
		Model(admin).
		Update("password_hash", hash).Error
}
