package pgstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/pkg/db"
)

const productColumns = `id, name, slug, description, price, image_url, category, featured, best_seller, seasonal, stock, created_at`

func scanProduct(row pgx.Row) (*catalogdomain.Product, error) {
	var p catalogdomain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.Category,
		&p.Featured,
		&p.BestSeller,
		&p.Seasonal,
		&p.Stock,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

func (s *Store) listProducts(ctx context.Context, where string, args ...any) ([]catalogdomain.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products`
	if where != "" {
		sql += ` WHERE ` + where
	}
	sql += ` ORDER BY id ASC`
	return getMany(ctx, s.pool, scanProduct, sql, args...)
}

func (s *Store) GetAllProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, "")
}

func (s *Store) GetProductsByCategory(ctx context.Context, category string) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, `category = $1`, category)
}

func (s *Store) GetFeaturedProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, `featured`)
}

func (s *Store) GetBestSellerProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, `best_seller`)
}

func (s *Store) GetSeasonalProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, `seasonal`)
}

func (s *Store) GetProductByID(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	return getOne(ctx, s.pool, scanProduct, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*catalogdomain.Product, error) {
	return getOne(ctx, s.pool, scanProduct, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

func (s *Store) CreateProduct(ctx context.Context, input catalogdomain.NewProduct) (*catalogdomain.Product, error) {
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
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.ImageURL,
		p.Category,
		p.Featured,
		p.BestSeller,
		p.Seasonal,
		p.Stock,
		p.CreatedAt,
	)
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateSlug
		}
		return nil, db.Classify(err)
	}
	return &p, nil
}

// UpdateProduct builds a SET clause from the provided fields only.
func (s *Store) UpdateProduct(ctx context.Context, id int64, patch catalogdomain.ProductPatch) (*catalogdomain.Product, error) {
	cols := patch.Columns()
	if len(cols) == 0 {
		return s.GetProductByID(ctx, id)
	}

	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		sets = append(sets, fmt.Sprintf("%s = $%d", name, i+1))
		args = append(args, cols[name])
	}
	args = append(args, id)

	sql := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), productColumns)

	p, err := getOne(ctx, s.pool, scanProduct, sql, args...)
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateSlug
		}
		return nil, err
	}
	return p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, db.Classify(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteAllProducts(ctx context.Context) (bool, error) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM products`); err != nil {
		return false, db.Classify(err)
	}
	return true, nil
}
