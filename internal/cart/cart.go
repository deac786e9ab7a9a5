// Package cart holds a shopper's pending lines until checkout. Each line keeps
// the name, price and image the shopper saw when adding it.
package cart

import (
	"errors"
	"sync"

	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
)

var ErrEmptyCart = errors.New("empty_cart")

type Line struct {
	ProductID int64  `json:"productId,string"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int64  `json:"quantity"`
}

func (l Line) Subtotal() int64 {
	return l.Price * l.Quantity
}

// Cart is safe for concurrent use. The zero value is an empty cart.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add puts qty units of p in the cart. A product already present keeps its
// original snapshot and only gains quantity. qty below 1 counts as 1.
func (c *Cart) Add(p catalogdomain.Product, qty int64) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity += qty
		return
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  qty,
	})
}

func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

// SetQuantity removes the line when qty is below 1. Unknown products are
// ignored.
func (c *Cart) SetQuantity(productID, qty int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty < 1 {
		c.remove(productID)
		return
	}
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = qty
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) TotalItems() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPrice()
}

// Checkout builds the order request for the current lines. The cart is left
// untouched so a failed submission can be retried.
func (c *Cart) Checkout(customer orderdomain.OrderInput) (orderdomain.PlaceOrderRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return orderdomain.PlaceOrderRequest{}, ErrEmptyCart
	}

	items := make([]orderdomain.ItemInput, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, orderdomain.ItemInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	customer.Total = c.totalPrice()
	return orderdomain.PlaceOrderRequest{Order: customer, Items: items}, nil
}

func (c *Cart) totalPrice() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

func (c *Cart) index(productID int64) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(productID int64) {
	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}
