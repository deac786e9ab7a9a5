package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/storefront/internal/cache"
	"github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/observability/logger"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/seed"
	"github.com/smallbiznis/storefront/internal/validation"
	"github.com/smallbiznis/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Cache   cache.ProductListCache `optional:"true"`
	Metrics *metrics.Metrics       `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	cache   cache.ProductListCache
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("catalog.service"),
		repo:    p.Repo,
		cache:   p.Cache,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Product, error) {
	req.Category = strings.TrimSpace(req.Category)
	if req.Filter == domain.FilterCategory && req.Category == "" {
		return nil, validation.NewError("category", "required", "Category is required")
	}

	key := req.CacheKey()
	var generation uint64
	if s.cache != nil {
		if items, ok := s.cache.Get(ctx, key); ok {
			return items, nil
		}
		generation = s.cache.Generation(ctx)
	}

	items, err := s.list(ctx, req)
	if err != nil {
		if db.IsConnectionErr(err) {
			// Browsing keeps working without a database.
			logger.WithContext(ctx, s.log).Warn("product list degraded to empty",
				zap.String("list", key),
				zap.Error(err),
			)
			return []domain.Product{}, nil
		}
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, generation, key, items)
	}
	return items, nil
}

func (s *Service) list(ctx context.Context, req domain.ListRequest) ([]domain.Product, error) {
	switch req.Filter {
	case "", domain.FilterAll:
		return s.repo.GetAllProducts(ctx)
	case domain.FilterFeatured:
		return s.repo.GetFeaturedProducts(ctx)
	case domain.FilterBestSeller:
		return s.repo.GetBestSellerProducts(ctx)
	case domain.FilterSeasonal:
		return s.repo.GetSeasonalProducts(ctx)
	case domain.FilterCategory:
		return s.repo.GetProductsByCategory(ctx, req.Category)
	default:
		return nil, validation.NewError("filter", "oneof", "Unknown product list")
	}
}

func (s *Service) Lookup(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	value := strings.TrimSpace(idOrSlug)
	if value == "" {
		return nil, domain.ErrNotFound
	}

	if id, err := snowflake.ParseString(value); err == nil {
		item, err := s.repo.GetProductByID(ctx, id.Int64())
		if err != nil {
			return nil, s.lookupError(ctx, value, err)
		}
		if item != nil {
			return item, nil
		}
	}

	item, err := s.repo.GetProductBySlug(ctx, value)
	if err != nil {
		return nil, s.lookupError(ctx, value, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// lookupError reports an unreachable store as a missing product, the same
// way List reports it as an empty list.
func (s *Service) lookupError(ctx context.Context, value string, err error) error {
	if !db.IsConnectionErr(err) {
		return err
	}
	logger.WithContext(ctx, s.log).Warn("product lookup degraded to not found",
		zap.String("product", value),
		zap.Error(err),
	)
	return domain.ErrNotFound
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Category = strings.TrimSpace(req.Category)
	if req.Slug == "" {
		req.Slug = slug.Make(req.Name)
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	input := domain.NewProduct{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Category:    req.Category,
		Featured:    boolValue(req.Featured),
		BestSeller:  boolValue(req.BestSeller),
		Seasonal:    boolValue(req.Seasonal),
	}
	if req.Stock != nil {
		input.Stock = *req.Stock
	}

	item, err := s.repo.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	s.afterMutation(ctx, "create")
	logger.WithContext(ctx, s.log).Info("product created",
		zap.Int64("product_id", item.ID),
		zap.String("slug", item.Slug),
	)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.Slug != nil {
		trimmed := strings.TrimSpace(*patch.Slug)
		patch.Slug = &trimmed
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	var item *domain.Product
	if patch.Empty() {
		item, err = s.repo.GetProductByID(ctx, productID)
	} else {
		item, err = s.repo.UpdateProduct(ctx, productID, patch)
	}
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if !patch.Empty() {
		s.afterMutation(ctx, "update")
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteProduct(ctx, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}

	s.afterMutation(ctx, "delete")
	logger.WithContext(ctx, s.log).Info("product deleted", zap.Int64("product_id", productID))
	return nil
}

func (s *Service) Reseed(ctx context.Context) ([]domain.Product, error) {
	if _, err := s.repo.DeleteAllProducts(ctx); err != nil {
		return nil, err
	}
	items, err := seed.LoadCatalog(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	s.afterMutation(ctx, "reseed")
	logger.WithContext(ctx, s.log).Info("catalog reseeded", zap.Int("products", len(items)))
	return items, nil
}

func (s *Service) afterMutation(ctx context.Context, op string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	s.metrics.RecordProductMutation(ctx, op)
}

func parseID(id string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}

func boolValue(v *bool) bool {
	return v != nil && *v
}
