package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sukalov/shitsu/pkg/enums"
)

// Order is a submitted checkout with its line-item snapshots.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	CustomerName   string               `gorm:"column:customer_name;not null"`
	Phone          string               `gorm:"column:phone;not null"`
	Email          *string              `gorm:"column:email"`
	Address        *string              `gorm:"column:address"`
	DeliveryMethod enums.DeliveryMethod `gorm:"column:delivery_method;not null"`
	Total          int                  `gorm:"column:total;not null"`
	Status         enums.OrderStatus    `gorm:"column:status;not null;default:pending"`
	Items          []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem captures product name and price as they were at purchase time.
type OrderItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;not null"`
	Price     int       `gorm:"column:price;not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
