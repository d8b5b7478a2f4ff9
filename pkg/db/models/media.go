package models

import (
	"time"

	"github.com/google/uuid"
)

// Media records an uploaded image blob held in the local disk store.
type Media struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FileName    string    `gorm:"column:file_name;not null"`
	ContentType string    `gorm:"column:content_type;not null"`
	SizeBytes   int64     `gorm:"column:size_bytes;not null"`
	Path        string    `gorm:"column:path;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Media) TableName() string {
	return "media"
}
