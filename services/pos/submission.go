package pos

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MarcGrol/salesbackend/lib/myhttpclient"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/services/pos/cart"
)

var (
	ErrSaleRejected  = cart.NewNotice("sale_rejected", "The sale could not be registered. Please check the stock and the customer data.")
	ErrSaleTransport = cart.NewNotice("sale_transport", "An error occurred while processing the request.")
)

type Customer struct {
	Name  string
	DNI   string
	Email string
}

type saleRequest struct {
	CustomerName  string          `json:"nombre_cliente"`
	CustomerDNI   string          `json:"dni_cliente"`
	CustomerEmail string          `json:"email_cliente"`
	Lines         []cart.SaleLine `json:"productos"`
}

// submissionClient sends a finished cart to the sale backend. It makes exactly one attempt.
type submissionClient struct {
	sender  myhttpclient.HTTPSender
	baseURL string
	logger  mylog.Logger
}

func newSubmissionClient(sender myhttpclient.HTTPSender, baseURL string, logger mylog.Logger) *submissionClient {
	return &submissionClient{
		sender:  sender,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *submissionClient) Submit(c context.Context, customer Customer, lines []cart.SaleLine) error {
	body, err := json.Marshal(saleRequest{
		CustomerName:  customer.Name,
		CustomerDNI:   customer.DNI,
		CustomerEmail: customer.Email,
		Lines:         lines,
	})
	if err != nil {
		s.logger.Log(c, customer.DNI, mylog.SeverityError, "Error marshalling sale request: %s", err)
		return ErrSaleTransport
	}

	status, _, err := s.sender.Send(c, http.MethodPost, s.baseURL+"/venta/nueva", body)
	if err != nil {
		s.logger.Log(c, customer.DNI, mylog.SeverityError, "Error submitting sale: %s", err)
		return ErrSaleTransport
	}

	if status < 200 || status >= 300 {
		s.logger.Log(c, customer.DNI, mylog.SeverityWarn, "Sale rejected with http-status %d", status)
		return ErrSaleRejected
	}

	s.logger.Log(c, customer.DNI, mylog.SeverityInfo, "Sale with %d lines submitted", len(lines))

	return nil
}
