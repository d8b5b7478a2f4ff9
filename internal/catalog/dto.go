package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/sukalov/shitsu/pkg/db/models"
	"github.com/sukalov/shitsu/pkg/enums"
)

// ProductDTO represents a catalog listing returned to clients.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	Category    string    `json:"category"`
	Subcategory *string   `json:"subcategory,omitempty"`
	Images      []string  `json:"images"`
	ImageURLs   []string  `json:"image_urls"`
	Description string    `json:"description"`
	IsSold      bool      `json:"is_sold"`
	SeriesID    *string   `json:"series_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SeriesDTO groups the listings that share a series identifier.
type SeriesDTO struct {
	SeriesID string       `json:"series_id"`
	Products []ProductDTO `json:"products"`
}

// ListProductsInput carries the optional catalog filters. Both filters
// apply together when set.
type ListProductsInput struct {
	Category *enums.ProductCategory
	IsSold   *bool
}

// CreateProductInput holds the validated payload to create a listing.
type CreateProductInput struct {
	Name        string
	Price       int
	Category    enums.ProductCategory
	Subcategory *string
	Images      []string
	Description string
	SeriesID    *string
}

// UpdateProductInput holds optional mutation values for a listing.
type UpdateProductInput struct {
	Name        *string
	Price       *int
	Category    *enums.ProductCategory
	Subcategory *string
	Images      *[]string
	Description *string
	IsSold      *bool
	SeriesID    *string
}

func toProductDTO(product *models.Product, imageURLs []string) ProductDTO {
	images := []string(product.Images)
	if images == nil {
		images = []string{}
	}
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Category:    product.Category.String(),
		Subcategory: product.Subcategory,
		Images:      images,
		ImageURLs:   imageURLs,
		Description: product.Description,
		IsSold:      product.IsSold,
		SeriesID:    product.SeriesID,
		CreatedAt:   product.CreatedAt,
	}
}
