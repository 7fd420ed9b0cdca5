package sale

import (
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/lib/mypublisher"
	"github.com/MarcGrol/salesbackend/lib/mystore"
	"github.com/MarcGrol/salesbackend/lib/mytime"
	"github.com/MarcGrol/salesbackend/lib/myuuid"
)

type Stores struct {
	Products  mystore.Store[Product]
	Customers mystore.Store[Customer]
	Sales     mystore.Store[Sale]
	Sequences mystore.Store[Sequence]
}

type service struct {
	productStore  mystore.Store[Product]
	customerStore mystore.Store[Customer]
	saleStore     mystore.Store[Sale]
	sequenceStore mystore.Store[Sequence]
	publisher     mypublisher.Publisher
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(stores Stores, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, pub mypublisher.Publisher) *service {
	return &service{
		productStore:  stores.Products,
		customerStore: stores.Customers,
		saleStore:     stores.Sales,
		sequenceStore: stores.Sequences,
		publisher:     pub,
		nower:         nower,
		uuider:        uuider,
		logger:        logger,
	}
}
