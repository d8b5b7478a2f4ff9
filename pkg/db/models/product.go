package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sukalov/shitsu/pkg/enums"
)

// Product represents a single artwork or merch listing.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Name        string                `gorm:"column:name;not null"`
	Price       int                   `gorm:"column:price;not null"`
	Category    enums.ProductCategory `gorm:"column:category;not null"`
	Subcategory *string               `gorm:"column:subcategory"`
	Images      pq.StringArray        `gorm:"column:images;type:text[];not null"`
	Description string                `gorm:"column:description;not null;default:''"`
	IsSold      bool                  `gorm:"column:is_sold;not null;default:false"`
	SeriesID    *string               `gorm:"column:series_id"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
