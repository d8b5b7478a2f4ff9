package orders

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sukalov/shitsu/pkg/db/models"
	"github.com/sukalov/shitsu/pkg/enums"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
)

// Service exposes order submission and admin management.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	ListOrders(ctx context.Context, status *enums.OrderStatus) ([]OrderDTO, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo *Repository
	tx   txRunner
}

// NewService constructs an order service instance.
func NewService(repo *Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// CreateOrder validates the submitted payload and persists the order
// with its line-item snapshots. The total is recomputed server side and
// must match what the client sent.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if err := validateCreateOrder(input); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:             uuid.New(),
		CustomerName:   strings.TrimSpace(input.CustomerName),
		Phone:          strings.TrimSpace(input.Phone),
		Email:          input.Email,
		Address:        input.Address,
		DeliveryMethod: input.DeliveryMethod,
		Total:          input.Total,
		Status:         enums.OrderStatusPending,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	create := func(repo *Repository) error {
		_, err := repo.Create(ctx, order)
		return err
	}

	var err error
	if s.tx != nil {
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return create(s.repo.WithTx(tx))
		})
	} else {
		err = create(s.repo)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
	}

	dto := toOrderDTO(order)
	return &dto, nil
}

func (s *service) ListOrders(ctx context.Context, status *enums.OrderStatus) ([]OrderDTO, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status filter").
			WithDetails(map[string]string{"status": status.String()})
	}

	orders, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, toOrderDTO(&orders[i]))
	}
	return dtos, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toOrderDTO(order)
	return &dto, nil
}

// UpdateOrderStatus moves the order to the requested status. Repeating
// the current status succeeds without writing; orders that were
// delivered or cancelled may not change again.
func (s *service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": status.String()})
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == status {
		dto := toOrderDTO(order)
		return &dto, nil
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is closed").
			WithDetails(map[string]string{
				"current":   order.Status.String(),
				"requested": status.String(),
			})
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
	}

	order.Status = status
	dto := toOrderDTO(order)
	return &dto, nil
}

func (s *service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findOrder(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting order")
	}
	return nil
}

// CountByStatus reports how many orders sit in every known status,
// including zeroes for statuses with no orders.
func (s *service) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting orders")
	}

	result := map[string]int64{
		enums.OrderStatusPending.String():   0,
		enums.OrderStatusConfirmed.String(): 0,
		enums.OrderStatusShipped.String():   0,
		enums.OrderStatusDelivered.String(): 0,
		enums.OrderStatusCancelled.String(): 0,
	}
	for status, count := range counts {
		result[status.String()] = count
	}
	return result, nil
}

func (s *service) findOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return order, nil
}

func validateCreateOrder(input CreateOrderInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.CustomerName) == "" {
		details["customer_name"] = "required"
	}
	if strings.TrimSpace(input.Phone) == "" {
		details["phone"] = "required"
	}
	if !input.DeliveryMethod.IsValid() {
		details["delivery_method"] = "unknown delivery method"
	}
	if len(input.Items) == 0 {
		details["items"] = "at least one item required"
	}

	recomputed := 0
	for i, item := range input.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.Quantity <= 0 {
			details[field+".quantity"] = "must be positive"
		}
		if item.Price < 0 {
			details[field+".price"] = "must not be negative"
		}
		if strings.TrimSpace(item.Name) == "" {
			details[field+".name"] = "required"
		}
		recomputed += item.Price * item.Quantity
	}
	if len(details) == 0 && recomputed != input.Total {
		details["total"] = fmt.Sprintf("expected %d, got %d", recomputed, input.Total)
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order payload").WithDetails(details)
	}
	return nil
}
