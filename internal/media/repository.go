package media

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sukalov/shitsu/pkg/db/models"
)

// Repository persists media rows describing stored blobs.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the media row.
func (r *Repository) Create(ctx context.Context, row *models.Media) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByID loads the media row for the storage id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var row models.Media
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the media row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Media{}).Error
}
