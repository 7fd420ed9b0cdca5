package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product in the sale. UnitPrice and AvailableStock are a snapshot taken when
// the item was added and are never refreshed.
type LineItem struct {
	ID             string
	Name           string
	UnitPrice      decimal.Decimal
	AvailableStock int
	Quantity       int
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Candidate is what the catalog offers for the currently selected product.
type Candidate struct {
	ID             string
	Name           string
	UnitPrice      decimal.Decimal
	AvailableStock int
}

// SaleLine is one entry of the payload that is submitted to the backend.
type SaleLine struct {
	ProductID int `json:"producto_id"`
	Quantity  int `json:"cantidad"`
}
