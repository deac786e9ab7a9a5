package domain

import "context"

// Repository is the product half of the storage contract. Lookups return
// (nil, nil) when nothing matches and lists are ordered by id.
type Repository interface {
	GetAllProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]Product, error)
	GetFeaturedProducts(ctx context.Context) ([]Product, error)
	GetBestSellerProducts(ctx context.Context) ([]Product, error)
	GetSeasonalProducts(ctx context.Context) ([]Product, error)

	// CreateProduct fails with ErrDuplicateSlug when the slug is taken.
	CreateProduct(ctx context.Context, input NewProduct) (*Product, error)
	// UpdateProduct returns (nil, nil) when id does not exist.
	UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	DeleteAllProducts(ctx context.Context) (bool, error)
}
