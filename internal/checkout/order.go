package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Pedr0sc/techstore/internal/address"
	"github.com/Pedr0sc/techstore/internal/snapshot"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is the finalized checkout result. It is ephemeral: assembled for the
// confirmation step only, never persisted.
type Order struct {
	ID         string          `json:"id"`
	Customer   Customer        `json:"customer"`
	Address    address.Record  `json:"address"`
	Number     string          `json:"number"`
	Complement string          `json:"complement,omitempty"`
	Items      []snapshot.Item `json:"items"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	PlacedAt   time.Time       `json:"placed_at"`
}
