package domain

import (
	"context"
	"errors"
)

type Service interface {
	Place(ctx context.Context, req PlaceOrderRequest) (*Order, error)
	Get(ctx context.Context, id string) (*OrderWithItems, error)
}

type OrderInput struct {
	CustomerName    string `json:"customerName" validate:"notblank"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string `json:"customerPhone" validate:"notblank"`
	ShippingAddress string `json:"shippingAddress" validate:"notblank"`
	City            string `json:"city" validate:"notblank"`
	PostalCode      string `json:"postalCode" validate:"notblank"`
	Total           int64  `json:"total" validate:"gte=0"`
}

type ItemInput struct {
	ProductID int64 `json:"productId,string" validate:"required"`
	Quantity  int64 `json:"quantity" validate:"gte=1"`
	Price     int64 `json:"price" validate:"gte=0"`
}

type PlaceOrderRequest struct {
	Order OrderInput  `json:"order"`
	Items []ItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderWithItems struct {
	Order *Order      `json:"order"`
	Items []OrderItem `json:"items"`
}

var (
	ErrNotFound  = errors.New("not_found")
	ErrInvalidID = errors.New("invalid_id")
)
