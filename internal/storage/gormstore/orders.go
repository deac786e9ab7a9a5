package gormstore

import (
	"context"

	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/pkg/db"
	"gorm.io/gorm"
)

func (s *Store) CreateOrder(ctx context.Context, input orderdomain.NewOrder, items []orderdomain.NewOrderItem) (*orderdomain.Order, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}

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
	rows := make([]orderdomain.OrderItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, orderdomain.OrderItem{
			ID:        s.nextID(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, db.Classify(err)
	}
	return &order, nil
}

func (s *Store) GetOrderByID(ctx context.Context, id int64) (*orderdomain.Order, error) {
	if s.db == nil {
		return nil, nil
	}
	var order orderdomain.Order
	res := s.conn(ctx).Where("id = ?", id).Limit(1).Find(&order)
	if res.Error != nil {
		return nil, db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &order, nil
}

func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]orderdomain.OrderItem, error) {
	items := []orderdomain.OrderItem{}
	if s.db == nil {
		return items, nil
	}
	if err := s.conn(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, db.Classify(err)
	}
	return items, nil
}
