package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Pedr0sc/techstore/internal/cart"
	"github.com/Pedr0sc/techstore/internal/catalog"
)

// Item is a line item with product attributes denormalized at capture time.
// The checkout page renders from this record alone, so the snapshot stays
// readable even if the catalog changes between the two page loads.
type Item struct {
	ProductID   int64            `json:"product_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    catalog.Category `json:"category"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Quantity    int              `json:"quantity"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
}

// Snapshot is the full cart state persisted at checkout initiation.
type Snapshot struct {
	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CapturedAt  time.Time       `json:"captured_at"`
}

func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.Items) == 0
}

func (s *Snapshot) ItemCount() int {
	if s == nil {
		return 0
	}
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Capture joins the cart with the catalog into a denormalized snapshot.
// Line items whose product has vanished from the catalog are dropped,
// matching cart.Total.
func Capture(ctx context.Context, c *cart.Cart, cat catalog.Catalog) (*Snapshot, error) {
	items := c.Items()
	snap := &Snapshot{
		Items:       make([]Item, 0, len(items)),
		TotalAmount: decimal.Zero,
		CapturedAt:  time.Now(),
	}

	for _, li := range items {
		p, err := cat.GetByID(ctx, li.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			return nil, err
		}

		subtotal := p.Subtotal(li.Quantity)
		snap.Items = append(snap.Items, Item{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			UnitPrice:   p.UnitPrice,
			Quantity:    li.Quantity,
			Subtotal:    subtotal,
		})
		snap.TotalAmount = snap.TotalAmount.Add(subtotal)
	}

	return snap, nil
}
