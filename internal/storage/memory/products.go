package memory

import (
	"context"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
)

func productID(p catalogdomain.Product) int64 { return p.ID }

func (s *Store) filterProducts(ctx context.Context, keep func(catalogdomain.Product) bool) ([]catalogdomain.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalogdomain.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sortByID(out, productID)
	return out, nil
}

func (s *Store) GetAllProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.filterProducts(ctx, func(catalogdomain.Product) bool { return true })
}

func (s *Store) GetProductsByCategory(ctx context.Context, category string) ([]catalogdomain.Product, error) {
	return s.filterProducts(ctx, func(p catalogdomain.Product) bool { return p.Category == category })
}

func (s *Store) GetFeaturedProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.filterProducts(ctx, func(p catalogdomain.Product) bool { return p.Featured })
}

func (s *Store) GetBestSellerProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.filterProducts(ctx, func(p catalogdomain.Product) bool { return p.BestSeller })
}

func (s *Store) GetSeasonalProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.filterProducts(ctx, func(p catalogdomain.Product) bool { return p.Seasonal })
}

func (s *Store) GetProductByID(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*catalogdomain.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slugIndex[slug]
	if !ok {
		return nil, nil
	}
	p := s.products[id]
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, input catalogdomain.NewProduct) (*catalogdomain.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.slugIndex[input.Slug]; taken {
		return nil, catalogdomain.ErrDuplicateSlug
	}
	p := s.insertProduct(input)
	return &p, nil
}

// insertProduct expects the caller to hold the write lock and to have checked
// the slug.
func (s *Store) insertProduct(input catalogdomain.NewProduct) catalogdomain.Product {
	p := catalogdomain.Product{
		ID:          s.nextID(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Featured:    input.Featured,
		BestSeller:  input.BestSeller,
		Seasonal:    input.Seasonal,
		Stock:       input.Stock,
		CreatedAt:   s.now(),
	}
	s.products[p.ID] = p
	s.slugIndex[p.Slug] = p.ID
	return p
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch catalogdomain.ProductPatch) (*catalogdomain.Product, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return nil, nil
	}

	updated := current
	patch.Apply(&updated)

	if updated.Slug != current.Slug {
		if owner, taken := s.slugIndex[updated.Slug]; taken && owner != id {
			return nil, catalogdomain.ErrDuplicateSlug
		}
		delete(s.slugIndex, current.Slug)
		s.slugIndex[updated.Slug] = id
	}
	s.products[id] = updated
	return &updated, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return false, nil
	}
	delete(s.products, id)
	if s.slugIndex[p.Slug] == id {
		delete(s.slugIndex, p.Slug)
	}
	return true, nil
}

func (s *Store) DeleteAllProducts(ctx context.Context) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = map[int64]catalogdomain.Product{}
	s.slugIndex = map[string]int64{}
	return true, nil
}
