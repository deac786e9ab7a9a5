package domain

import (
	"context"
	"errors"
)

//go:generate mockgen -source=service.go -destination=./mocks/mock_service.go -package=mocks
type Service interface {
	List(ctx context.Context, req ListRequest) ([]Product, error)
	// Lookup resolves a numeric id first and falls back to the slug.
	Lookup(ctx context.Context, idOrSlug string) (*Product, error)
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	Delete(ctx context.Context, id string) error
	// Reseed replaces the whole catalog with the built-in product list.
	Reseed(ctx context.Context) ([]Product, error)
}

type ListFilter string

const (
	FilterAll        ListFilter = "all"
	FilterFeatured   ListFilter = "featured"
	FilterBestSeller ListFilter = "bestsellers"
	FilterSeasonal   ListFilter = "seasonal"
	FilterCategory   ListFilter = "category"
)

type ListRequest struct {
	Filter   ListFilter
	Category string
}

// CacheKey identifies the list in the product list cache.
func (r ListRequest) CacheKey() string {
	if r.Filter == FilterCategory {
		return string(r.Filter) + ":" + r.Category
	}
	if r.Filter == "" {
		return string(FilterAll)
	}
	return string(r.Filter)
}

type CreateRequest struct {
	Name        string `json:"name" validate:"notblank,max=255"`
	Slug        string `json:"slug" validate:"omitempty,slug,max=255"`
	Description string `json:"description" validate:"notblank"`
	Price       int64  `json:"price" validate:"gte=0"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category" validate:"notblank,max=100"`
	Featured    *bool  `json:"featured"`
	BestSeller  *bool  `json:"bestSeller"`
	Seasonal    *bool  `json:"seasonal"`
	Stock       *int64 `json:"stock" validate:"omitempty,gte=0"`
}

var (
	ErrNotFound      = errors.New("not_found")
	ErrInvalidID     = errors.New("invalid_id")
	ErrDuplicateSlug = errors.New("duplicate_slug")
)
