package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/salesbackend/lib/mycontext"
	"github.com/MarcGrol/salesbackend/lib/myhttp"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/services/sale"
)

// Catalog is read on warmup so the first terminal page load does not pay for the store connection.
//
//go:generate mockgen -source=web.go -package warmup -destination catalog_mock.go Catalog
type Catalog interface {
	Products(c context.Context) ([]sale.Product, error)
	Dashboard(c context.Context) (sale.Dashboard, error)
}

type webService struct {
	logger  mylog.Logger
	catalog Catalog
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(catalog Catalog) *webService {
	return &webService{
		logger:  mylog.New("warmup"),
		catalog: catalog,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.catalog.Products(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		_, err = s.catalog.Dashboard(c)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Successfully processed warmup request (%d products)", len(products)),
		})
	}
}
