package saleevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MarcGrol/salesbackend/lib/myerrors"
	"github.com/MarcGrol/salesbackend/lib/myevents"
)

const (
	TopicName          = "sale"
	saleRegisteredName = TopicName + ".registered"
)

type SaleEventService interface {
	Subscribe(c context.Context) error
	OnSaleRegistered(c context.Context, topic string, event SaleRegistered) error
}

func DispatchEvent(c context.Context, reader io.Reader, service SaleEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case saleRegisteredName:
		{
			event := SaleRegistered{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnSaleRegistered(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unsupported event type %s", envelope.EventTypeName))
	}
}

type Customer struct {
	DNI   string
	Name  string
	Email string
}

type Line struct {
	ProductID        int
	ProductName      string
	Quantity         int
	UnitPriceInCents int64
}

type SaleRegistered struct {
	SaleUID      string
	SaleID       int
	CreatedAt    time.Time
	Customer     Customer
	Lines        []Line
	TotalInCents int64
}

func (e SaleRegistered) GetEventTypeName() string {
	return saleRegisteredName
}

func (e SaleRegistered) GetAggregateName() string {
	return e.SaleUID
}
