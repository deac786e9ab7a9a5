package domain

import "context"

type Repository interface {
	// CreateOrder stores the order and all of its items as one unit.
	CreateOrder(ctx context.Context, order NewOrder, items []NewOrderItem) (*Order, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]OrderItem, error)
}
