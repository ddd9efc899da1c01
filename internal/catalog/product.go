package catalog

import "github.com/shopspring/decimal"

type Category string

const (
	CategorySmartphone Category = "smartphone"
	CategoryLaptop     Category = "laptop"
	CategoryTablet     Category = "tablet"
	CategoryAccessory  Category = "accessory"

	// CategoryAll is the pseudo-category that selects the whole catalog.
	CategoryAll Category = "all"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Category    Category
	Icon        string
	ImageURL    string
}

func (p *Product) Subtotal(quantity int) decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
