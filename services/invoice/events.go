package invoice

import (
	"context"
	"fmt"

	"github.com/MarcGrol/salesbackend/lib/myhttp"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/services/sale/saleevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.pubsub.CreateTopic(c, saleevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", saleevents.TopicName, err)
	}

	err = s.pubsub.Subscribe(c, saleevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/invoice/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", saleevents.TopicName, err)
	}

	return nil
}

func (s *service) OnSaleRegistered(c context.Context, topic string, event saleevents.SaleRegistered) error {
	s.logger.Log(c, event.SaleUID, mylog.SeverityInfo, "Event: sale %d registered for %s", event.SaleID, event.Customer.Email)

	return s.mailInvoice(c, newInvoice(event))
}
