package gormstore

import (
	"context"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/pkg/db"
	"gorm.io/gorm"
)

func (s *Store) listProducts(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]catalogdomain.Product, error) {
	items := []catalogdomain.Product{}
	if s.db == nil {
		return items, nil
	}
	stmt := s.conn(ctx).Model(&catalogdomain.Product{})
	if scope != nil {
		stmt = scope(stmt)
	}
	if err := stmt.Order("id ASC").Find(&items).Error; err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}

func flag(column string) func(*gorm.DB) *gorm.DB {
	return func(stmt *gorm.DB) *gorm.DB {
		return stmt.Where(column+" = ?", true)
	}
}

func (s *Store) GetAllProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, nil)
}

func (s *Store) GetProductsByCategory(ctx context.Context, category string) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, func(stmt *gorm.DB) *gorm.DB {
		return stmt.Where("category = ?", category)
	})
}

func (s *Store) GetFeaturedProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, flag("featured"))
}

func (s *Store) GetBestSellerProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, flag("best_seller"))
}

func (s *Store) GetSeasonalProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.listProducts(ctx, flag("seasonal"))
}

func (s *Store) GetProductByID(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	return s.findProduct(ctx, s.db, "id = ?", id)
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*catalogdomain.Product, error) {
	return s.findProduct(ctx, s.db, "slug = ?", slug)
}

func (s *Store) findProduct(ctx context.Context, conn *gorm.DB, query string, arg any) (*catalogdomain.Product, error) {
	if conn == nil {
		return nil, nil
	}
	var p catalogdomain.Product
	res := conn.WithContext(ctx).Where(query, arg).Limit(1).Find(&p)
	if res.Error != nil {
		return nil, db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, input catalogdomain.NewProduct) (*catalogdomain.Product, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}

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
	// Select every column so false flags are written instead of defaults.
	if err := s.conn(ctx).Select("*").Create(&p).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateSlug
		}
		return nil, db.Classify(err)
	}
	return &p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, patch catalogdomain.ProductPatch) (*catalogdomain.Product, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}

	var updated *catalogdomain.Product
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.findProduct(ctx, tx, "id = ?", id)
		if err != nil || current == nil {
			return err
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := tx.Model(&catalogdomain.Product{}).Where("id = ?", id).Updates(cols).Error; err != nil {
				return err
			}
		}
		patch.Apply(current)
		updated = current
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateSlug
		}
		return nil, db.Classify(err)
	}
	return updated, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	if err := s.writable(); err != nil {
		return false, err
	}
	res := s.conn(ctx).Where("id = ?", id).Delete(&catalogdomain.Product{})
	if res.Error != nil {
		return false, db.Classify(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) DeleteAllProducts(ctx context.Context) (bool, error) {
	if err := s.writable(); err != nil {
		return false, err
	}
	if err := s.conn(ctx).Where("1 = 1").Delete(&catalogdomain.Product{}).Error; err != nil {
		return false, db.Classify(err)
	}
	return true, nil
}
