package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Pedr0sc/techstore/internal/catalog"
)

// LineItem pairs a product reference with a quantity. Quantity is always >= 1
// for a line item held by a cart.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// Cart is an ordered sequence of line items. Insertion order is first-add
// order; at most one line item exists per product id.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// AddItem resolves the product through the catalog and either merges into the
// existing line item or appends a new one with quantity 1. An unresolvable
// product id is a silent no-op; the returned bool reports whether the cart
// changed.
func (c *Cart) AddItem(ctx context.Context, cat catalog.Catalog, productID int64) (bool, error) {
	if _, err := cat.GetByID(ctx, productID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return false, nil
		}
		return false, err
	}

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity++
			return true, nil
		}
	}

	c.items = append(c.items, LineItem{ProductID: productID, Quantity: 1})
	return true, nil
}

// ApplyQuantityDelta is the sole mutation path for increments and decrements.
// A missing product id is a no-op; a resulting quantity <= 0 removes the
// line item entirely.
func (c *Cart) ApplyQuantityDelta(productID int64, delta int) {
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		if c.items[i].Quantity+delta <= 0 {
			c.RemoveItem(productID)
		} else {
			c.items[i].Quantity += delta
		}
		return
	}
}

func (c *Cart) RemoveItem(productID int64) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Total resolves unit prices through the catalog at call time. Line items
// whose product has vanished from the catalog contribute nothing.
func (c *Cart) Total(ctx context.Context, cat catalog.Catalog) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range c.items {
		p, err := cat.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			return decimal.Zero, err
		}
		total = total.Add(p.Subtotal(item.Quantity))
	}
	return total, nil
}

// ItemCount is the sum of quantities. It is 0 exactly when the cart is empty.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	return append([]LineItem(nil), c.items...)
}
