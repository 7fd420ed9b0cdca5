package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/salesbackend/services/sale/saleevents"
)

var vatRate = decimal.RequireFromString("0.16")

type Invoice struct {
	SaleUID         string
	Number          int
	IssuedAt        time.Time
	Customer        saleevents.Customer `datastore:",noindex"`
	Lines           []saleevents.Line   `datastore:",noindex"`
	SubtotalInCents int64
	VATInCents      int64
	TotalInCents    int64
	MailedAt        *time.Time
	MailingSince    time.Time
}

func (i Invoice) IsMailed() bool {
	return i.MailedAt != nil
}

func newInvoice(event saleevents.SaleRegistered) Invoice {
	subtotal := int64(0)
	for _, line := range event.Lines {
		subtotal += line.UnitPriceInCents * int64(line.Quantity)
	}

	vat := decimal.NewFromInt(subtotal).Mul(vatRate).Round(0).IntPart()

	return Invoice{
		SaleUID:         event.SaleUID,
		Number:          event.SaleID,
		IssuedAt:        event.CreatedAt,
		Customer:        event.Customer,
		Lines:           event.Lines,
		SubtotalInCents: subtotal,
		VATInCents:      vat,
		TotalInCents:    subtotal + vat,
	}
}

func formatCents(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
