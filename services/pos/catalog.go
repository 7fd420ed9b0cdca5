package pos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/salesbackend/lib/myerrors"
	"github.com/MarcGrol/salesbackend/services/pos/cart"
	"github.com/MarcGrol/salesbackend/services/sale"
)

// CatalogOption is one entry of the product selection control. All attributes are kept as the
// strings the control carries, they are parsed only when an option is picked.
type CatalogOption struct {
	Value string
	Text  string
	Price string
	Stock string
}

func optionsFrom(products []sale.Product) []CatalogOption {
	options := make([]CatalogOption, 0, len(products))
	for _, p := range products {
		options = append(options, CatalogOption{
			Value: p.UID(),
			Text:  fmt.Sprintf("%s (Stock: %d)", p.Name, p.Stock),
			Price: p.Price().StringFixed(2),
			Stock: strconv.Itoa(p.Stock),
		})
	}
	return options
}

// candidateFor returns nil when nothing, or something unknown, is selected.
func candidateFor(options []CatalogOption, selected string) (*cart.Candidate, error) {
	if selected == "" {
		return nil, nil
	}

	for _, option := range options {
		if option.Value != selected {
			continue
		}

		price, err := decimal.NewFromString(option.Price)
		if err != nil {
			return nil, myerrors.NewInvalidInputErrorf("product %s has invalid price %q", option.Value, option.Price)
		}

		stock, err := strconv.Atoi(option.Stock)
		if err != nil {
			return nil, myerrors.NewInvalidInputErrorf("product %s has invalid stock %q", option.Value, option.Stock)
		}

		return &cart.Candidate{
			ID:             option.Value,
			Name:           displayName(option.Text),
			UnitPrice:      price,
			AvailableStock: stock,
		}, nil
	}

	return nil, nil
}

// displayName strips the parenthesised suffix, so "Coke (500ml) (Stock: 3)" becomes "Coke".
func displayName(text string) string {
	name, _, _ := strings.Cut(text, "(")
	return strings.TrimSpace(name)
}
