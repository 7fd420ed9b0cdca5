package sale

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int
	Name         string
	PriceInCents int64
	Stock        int
}

func (p Product) UID() string {
	return strconv.Itoa(p.ID)
}

func (p Product) Price() decimal.Decimal {
	return centsToDecimal(p.PriceInCents)
}

// Customers are keyed by DNI, the national identity number.
type Customer struct {
	DNI   string
	Name  string
	Email string
}

type Sale struct {
	UID          string
	ID           int
	CustomerDNI  string
	Customer     Customer `datastore:",noindex"`
	CreatedAt    time.Time
	Items        []SaleItem `datastore:",noindex"`
	TotalInCents int64
}

func (s Sale) Timestamp() string {
	return s.CreatedAt.Format("02/01/2006 15:04")
}

func (s Sale) Total() decimal.Decimal {
	return centsToDecimal(s.TotalInCents)
}

type SaleItem struct {
	ProductID        int
	ProductName      string
	Quantity         int
	UnitPriceInCents int64
}

func (i SaleItem) SubtotalInCents() int64 {
	return i.UnitPriceInCents * int64(i.Quantity)
}

// Sequence hands out consecutive numeric ids per entity kind.
type Sequence struct {
	Name string
	Last int
}

// SaleRequest is the json body of a new sale as posted by the terminal.
type SaleRequest struct {
	CustomerName  string     `json:"nombre_cliente"`
	CustomerDNI   string     `json:"dni_cliente"`
	CustomerEmail string     `json:"email_cliente"`
	Lines         []SaleLine `json:"productos"`
}

type SaleLine struct {
	ProductID int `json:"producto_id"`
	Quantity  int `json:"cantidad"`
}

// ProductForm is the backoffice form to add or edit a product.
type ProductForm struct {
	Name  string `form:"nombre"`
	Price string `form:"precio"`
	Stock string `form:"stock"`
}

type Dashboard struct {
	TotalStock          int
	TotalRevenueInCents int64
	SalesToday          int
	SalesLastWeek       int
	TopProducts         []ProductSales
	WeeklyRevenue       WeeklyRevenue
}

func (d Dashboard) TotalRevenue() decimal.Decimal {
	return centsToDecimal(d.TotalRevenueInCents)
}

type ProductSales struct {
	Name     string
	Quantity int
}

// WeeklyRevenue holds one label and one revenue amount per day, oldest day first.
type WeeklyRevenue struct {
	Labels []string  `json:"labels"`
	Datos  []float64 `json:"datos"`
}

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func decimalToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func parseCents(value string) (int64, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %s", value, err)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("price %q must not be negative", value)
	}
	return decimalToCents(amount), nil
}
