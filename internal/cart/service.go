package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sukalov/shitsu/pkg/db/models"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
)

// CartDTO is the cart payload returned after every operation.
type CartDTO struct {
	Token  string `json:"token"`
	Lines  []Line `json:"lines"`
	IsOpen bool   `json:"is_open"`
	Total  int    `json:"total"`
	Count  int    `json:"count"`
}

// Service exposes the cart operations backed by the token store.
type Service interface {
	Get(ctx context.Context, token string) (*CartDTO, error)
	AddItem(ctx context.Context, token string, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*CartDTO, error)
	SetQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*CartDTO, error)
	Clear(ctx context.Context, token string) (*CartDTO, error)
	SetOpen(ctx context.Context, token string, open bool) (*CartDTO, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	store    *Store
	products productLoader
}

// NewService constructs a cart service instance.
func NewService(store *Store, products productLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{store: store, products: products}, nil
}

// NewToken issues an opaque cart token.
func NewToken() string {
	return uuid.NewString()
}

func (s *service) Get(ctx context.Context, token string) (*CartDTO, error) {
	state, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return toDTO(token, state), nil
}

func (s *service) AddItem(ctx context.Context, token string, productID uuid.UUID, quantity int) (*CartDTO, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	state, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	snapshot := Snapshot{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Images:    product.Images,
	}
	next := AddItem(state, snapshot, quantity)
	return s.save(ctx, token, next)
}

func (s *service) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*CartDTO, error) {
	state, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, token, RemoveItem(state, productID))
}

func (s *service) SetQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*CartDTO, error) {
	state, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, token, SetQuantity(state, productID, quantity))
}

func (s *service) Clear(ctx context.Context, token string) (*CartDTO, error) {
	state, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, token, Clear(state))
}

func (s *service) SetOpen(ctx context.Context, token string, open bool) (*CartDTO, error) {
	state, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, token, SetOpen(state, open))
}

func (s *service) load(ctx context.Context, token string) (State, error) {
	if strings.TrimSpace(token) == "" {
		return EmptyState(), pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	state, err := s.store.Load(ctx, token)
	if err != nil {
		return EmptyState(), pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return state, nil
}

func (s *service) save(ctx context.Context, token string, state State) (*CartDTO, error) {
	if err := s.store.Save(ctx, token, state); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return toDTO(token, state), nil
}

func toDTO(token string, state State) *CartDTO {
	return &CartDTO{
		Token:  token,
		Lines:  state.Lines,
		IsOpen: state.IsOpen,
		Total:  Total(state),
		Count:  Count(state),
	}
}
