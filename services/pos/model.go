package pos

import (
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/MarcGrol/salesbackend/services/pos/cart"
	"github.com/MarcGrol/salesbackend/services/sale"
)

// commandForm is what every button of the terminal page posts: the whole page is one form.
type commandForm struct {
	CustomerName  string         `form:"nombre_cliente"`
	CustomerDNI   string         `form:"dni_cliente"`
	CustomerEmail string         `form:"email_cliente"`
	Product       string         `form:"producto"`
	Index         string         `form:"index"`
	Remove        string         `form:"remove"`
	Quantities    map[int]string `form:"cantidad"`
}

func (f commandForm) customer() Customer {
	return Customer{
		Name:  strings.TrimSpace(f.CustomerName),
		DNI:   strings.TrimSpace(f.CustomerDNI),
		Email: strings.TrimSpace(f.CustomerEmail),
	}
}

type PageInfo struct {
	Notice    *cart.Notice
	Catalog   []CatalogOption
	Selection string
	CartRows  template.HTML
	ItemCount int
	Total     string
	Customer  Customer
	Products  []sale.Product
	Sales     []sale.Sale
	Dashboard *sale.Dashboard
	Chart     template.JS
	HasChart  bool
}

// parseQuantity reads a number input value. Fractions are truncated and garbage yields 0,
// which the cart raises to 1.
func parseQuantity(value string) int {
	value = strings.TrimSpace(value)

	quantity, err := strconv.Atoi(value)
	if err == nil {
		return quantity
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

func parseIndex(value string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, cart.ErrNoSuchItem
	}
	return index, nil
}
