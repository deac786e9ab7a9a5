package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/pkg/db"
)

const (
	orderColumns     = `id, customer_name, customer_email, customer_phone, shipping_address, city, postal_code, total, status, created_at`
	orderItemColumns = `id, order_id, product_id, quantity, price`
)

func scanOrder(row pgx.Row) (*orderdomain.Order, error) {
	var o orderdomain.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.ShippingAddress,
		&o.City,
		&o.PostalCode,
		&o.Total,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}

func scanOrderItem(row pgx.Row) (*orderdomain.OrderItem, error) {
	var item orderdomain.OrderItem
	if err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateOrder inserts the order and its items inside one transaction; a
// failed item insert rolls the order back.
func (s *Store) CreateOrder(ctx context.Context, input orderdomain.NewOrder, items []orderdomain.NewOrderItem) (*orderdomain.Order, error) {
	order := orderdomain.Order{
		ID:              s.nextID(),
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		City:            input.City,
		PostalCode:      input.PostalCode,
		Total:           input.Total,
		Status:          orderdomain.StatusPending,
		CreatedAt:       s.now(),
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (`+orderColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ShippingAddress,
		order.City,
		order.PostalCode,
		order.Total,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		return nil, db.Classify(err)
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(
			`INSERT INTO order_items (`+orderItemColumns+`) VALUES ($1, $2, $3, $4, $5)`,
			s.nextID(), order.ID, item.ProductID, item.Quantity, item.Price,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, db.Classify(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, db.Classify(err)
	}
	return &order, nil
}

func (s *Store) GetOrderByID(ctx context.Context, id int64) (*orderdomain.Order, error) {
	return getOne(ctx, s.pool, scanOrder, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]orderdomain.OrderItem, error) {
	return getMany(ctx, s.pool, scanOrderItem,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id ASC`, orderID)
}
