package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/sukalov/shitsu/pkg/db/models"
	"github.com/sukalov/shitsu/pkg/enums"
)

// OrderDTO is the order payload returned to the admin panel.
type OrderDTO struct {
	ID             uuid.UUID      `json:"id"`
	CustomerName   string         `json:"customer_name"`
	Phone          string         `json:"phone"`
	Email          *string        `json:"email,omitempty"`
	Address        *string        `json:"address,omitempty"`
	DeliveryMethod string         `json:"delivery_method"`
	Total          int            `json:"total"`
	Status         string         `json:"status"`
	Items          []OrderItemDTO `json:"items"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// OrderItemDTO is a purchased line with its price snapshot.
type OrderItemDTO struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	Quantity  int       `json:"quantity"`
}

// CreateOrderInput holds the validated payload to submit an order.
type CreateOrderInput struct {
	CustomerName   string
	Phone          string
	Email          *string
	Address        *string
	DeliveryMethod enums.DeliveryMethod
	Items          []CreateOrderItemInput
	Total          int
}

// CreateOrderItemInput is one purchased line as sent by the client.
type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Name      string
	Price     int
	Quantity  int
}

func toOrderDTO(order *models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return OrderDTO{
		ID:             order.ID,
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Email:          order.Email,
		Address:        order.Address,
		DeliveryMethod: order.DeliveryMethod.String(),
		Total:          order.Total,
		Status:         order.Status.String(),
		Items:          items,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}
