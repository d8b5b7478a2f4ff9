package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/sukalov/shitsu/pkg/db/models"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
)

// Service exposes catalog read and management operations.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	GetProductsBySeries(ctx context.Context, seriesID string) ([]ProductDTO, error)
	ListSeries(ctx context.Context) ([]SeriesDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type imageURLResolver interface {
	ResolveURLs(ctx context.Context, refs []string) ([]string, error)
}

type service struct {
	repo     *Repository
	resolver imageURLResolver
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, resolver imageURLResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, resolver: resolver}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx, input.Category, input.IsSold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return s.toDTOs(ctx, products)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto, err := s.toDTO(ctx, product)
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) GetProductsBySeries(ctx context.Context, seriesID string) ([]ProductDTO, error) {
	seriesID = strings.TrimSpace(seriesID)
	if seriesID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "series id is required")
	}
	products, err := s.repo.ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list series products")
	}
	return s.toDTOs(ctx, products)
}

func (s *service) ListSeries(ctx context.Context) ([]SeriesDTO, error) {
	products, err := s.repo.ListWithSeries(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list series")
	}

	grouped := map[string][]ProductDTO{}
	order := []string{}
	for i := range products {
		product := &products[i]
		if product.SeriesID == nil {
			continue
		}
		id := *product.SeriesID
		dto, err := s.toDTO(ctx, product)
		if err != nil {
			return nil, err
		}
		if _, seen := grouped[id]; !seen {
			order = append(order, id)
		}
		grouped[id] = append(grouped[id], *dto)
	}

	series := make([]SeriesDTO, 0, len(order))
	for _, id := range order {
		series = append(series, SeriesDTO{SeriesID: id, Products: grouped[id]})
	}
	return series, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Images:      pq.StringArray(input.Images),
		Description: input.Description,
		SeriesID:    normalizeSeriesID(input.SeriesID),
	}
	if product.Images == nil {
		product.Images = pq.StringArray{}
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return s.toDTO(ctx, created)
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
		}
		product.Category = *input.Category
	}
	if input.Subcategory != nil {
		product.Subcategory = input.Subcategory
	}
	if input.Images != nil {
		product.Images = pq.StringArray(*input.Images)
		if product.Images == nil {
			product.Images = pq.StringArray{}
		}
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.IsSold != nil {
		product.IsSold = *input.IsSold
	}
	if input.SeriesID != nil {
		product.SeriesID = normalizeSeriesID(input.SeriesID)
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.toDTO(ctx, updated)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) toDTO(ctx context.Context, product *models.Product) (*ProductDTO, error) {
	urls := []string{}
	if s.resolver != nil {
		resolved, err := s.resolver.ResolveURLs(ctx, product.Images)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve image urls")
		}
		urls = resolved
	}
	dto := toProductDTO(product, urls)
	return &dto, nil
}

func (s *service) toDTOs(ctx context.Context, products []models.Product) ([]ProductDTO, error) {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dto, err := s.toDTO(ctx, &products[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

func validateCreate(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
	}
	return nil
}

func normalizeSeriesID(seriesID *string) *string {
	if seriesID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*seriesID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
