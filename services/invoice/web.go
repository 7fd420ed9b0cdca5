package invoice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/salesbackend/lib/myconfig"
	"github.com/MarcGrol/salesbackend/lib/mycontext"
	"github.com/MarcGrol/salesbackend/lib/myhttp"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/lib/mypubsub"
	"github.com/MarcGrol/salesbackend/lib/mystore"
	"github.com/MarcGrol/salesbackend/lib/mytime"
	"github.com/MarcGrol/salesbackend/services/sale/saleevents"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(store mystore.Store[Invoice], pubsub mypubsub.PubSub, mailer Mailer, nower mytime.Nower, company myconfig.Company) *webService {
	logger := mylog.New("invoice")
	return &webService{
		logger:  logger,
		service: newService(store, pubsub, mailer, nower, company, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/invoice/event", s.handleEvent()).Methods("POST")
	router.HandleFunc("/invoice/{saleUID}/pdf", s.getInvoicePDF()).Methods("GET")

	return s.service.Subscribe(c)
}

func (s *webService) handleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := saleevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

func (s *webService) getInvoicePDF() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		saleUID := mux.Vars(r)["saleUID"]

		pdf, err := s.service.getInvoicePDF(c, saleUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", attachmentName))
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(pdf)
		if err != nil {
			s.logger.Log(c, saleUID, mylog.SeverityError, "Error writing invoice pdf: %s", err)
		}
	}
}
