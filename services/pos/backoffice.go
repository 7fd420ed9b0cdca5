package pos

import (
	"context"

	"github.com/MarcGrol/salesbackend/services/sale"
)

// Backoffice supplies the catalog and the figures shown next to the cart.
//
//go:generate mockgen -source=backoffice.go -package pos -destination backoffice_mock.go Backoffice
type Backoffice interface {
	Products(c context.Context) ([]sale.Product, error)
	Sales(c context.Context) ([]sale.Sale, error)
	Dashboard(c context.Context) (sale.Dashboard, error)
}
