package domain

import "time"

const StatusPending = "pending"

type Order struct {
	ID              int64     `json:"id,string" gorm:"primaryKey;autoIncrement:false"`
	CustomerName    string    `json:"customerName" gorm:"type:text;not null"`
	CustomerEmail   string    `json:"customerEmail" gorm:"type:text;not null"`
	CustomerPhone   string    `json:"customerPhone" gorm:"type:text;not null"`
	ShippingAddress string    `json:"shippingAddress" gorm:"type:text;not null"`
	City            string    `json:"city" gorm:"type:text;not null"`
	PostalCode      string    `json:"postalCode" gorm:"type:text;not null"`
	Total           int64     `json:"total" gorm:"not null"`
	Status          string    `json:"status" gorm:"type:varchar(32);not null;default:pending"`
	CreatedAt       time.Time `json:"createdAt" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

// OrderItem keeps the unit price the customer saw at checkout. It is never
// re-read from the product.
type OrderItem struct {
	ID        int64 `json:"id,string" gorm:"primaryKey;autoIncrement:false"`
	OrderID   int64 `json:"orderId,string" gorm:"not null;index"`
	ProductID int64 `json:"productId,string" gorm:"not null"`
	Quantity  int64 `json:"quantity" gorm:"not null"`
	Price     int64 `json:"price" gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// NewOrder is the storage-level input for an order.
type NewOrder struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	City            string
	PostalCode      string
	Total           int64
}

type NewOrderItem struct {
	ProductID int64
	Quantity  int64
	Price     int64
}
