package memory

import (
	"context"

	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
)

// CreateOrder builds the order and its items before publishing either, all
// under one write lock, so readers never see an order without its items.
func (s *Store) CreateOrder(ctx context.Context, input orderdomain.NewOrder, items []orderdomain.NewOrderItem) (*orderdomain.Order, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

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

	stored := make([]orderdomain.OrderItem, 0, len(items))
	for _, item := range items {
		stored = append(stored, orderdomain.OrderItem{
			ID:        s.nextID(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	s.orders[order.ID] = order
	s.orderItems[order.ID] = stored
	return &order, nil
}

func (s *Store) GetOrderByID(ctx context.Context, id int64) (*orderdomain.Order, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]orderdomain.OrderItem, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.orderItems[orderID]
	out := make([]orderdomain.OrderItem, len(items))
	copy(out, items)
	return out, nil
}
