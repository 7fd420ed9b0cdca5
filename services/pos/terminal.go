package pos

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/services/pos/cart"
	"github.com/MarcGrol/salesbackend/services/sale"
)

// ErrQuantityAdjusted stops a submission whose typed quantity was raised to the minimum.
var ErrQuantityAdjusted = cart.NewNotice("quantity_adjusted", "The quantity was adjusted. Please check the sale before registering it.")

// terminal is the cash desk: one sale in progress, plus the catalog and figures as they were
// when the page was loaded. Commands are serialized by the mutex.
type terminal struct {
	sync.Mutex
	backoffice Backoffice
	client     *submissionClient
	logger     mylog.Logger

	store     *cart.Store
	renderer  *renderer
	customer  Customer
	catalog   []CatalogOption
	products  []sale.Product
	sales     []sale.Sale
	dashboard *sale.Dashboard
	inFlight  int
}

func newTerminal(backoffice Backoffice, client *submissionClient, logger mylog.Logger) *terminal {
	t := &terminal{
		backoffice: backoffice,
		client:     client,
		logger:     logger,
	}
	t.newSale()
	return t
}

func (t *terminal) newSale() {
	t.renderer = newRenderer()
	t.store = cart.NewStore(t.renderer)
	t.renderer.ItemsChanged(t.store.Items())
	t.customer = Customer{}
}

// reload starts over with an empty cart and fresh snapshots from the backoffice.
func (t *terminal) reload(c context.Context) error {
	products, err := t.backoffice.Products(c)
	if err != nil {
		return err
	}

	sales, err := t.backoffice.Sales(c)
	if err != nil {
		return err
	}

	dashboard, err := t.backoffice.Dashboard(c)
	if err != nil {
		return err
	}

	t.Lock()
	defer t.Unlock()

	if t.inFlight > 0 {
		t.logger.Log(c, "", mylog.SeverityWarn, "Page reloaded while %d submissions are in flight", t.inFlight)
	}

	t.newSale()
	t.products = products
	t.catalog = optionsFrom(products)
	t.sales = sales
	t.dashboard = &dashboard

	return nil
}

func (t *terminal) addItem(c context.Context, customer Customer, selected string) error {
	t.Lock()
	defer t.Unlock()

	t.customer = customer
	t.renderer.Select(selected)

	candidate, err := candidateFor(t.catalog, selected)
	if err != nil {
		return err
	}

	err = t.store.AddItem(candidate)
	if err != nil {
		return err
	}

	t.logger.Log(c, candidate.ID, mylog.SeverityDebug, "Added %s to the sale", candidate.Name)

	return nil
}

// setQuantity applies the quantity input of the row the index points at.
func (t *terminal) setQuantity(c context.Context, customer Customer, rawIndex string, quantities map[int]string) error {
	t.Lock()
	defer t.Unlock()

	t.customer = customer

	index, err := parseIndex(rawIndex)
	if err != nil {
		return err
	}

	_, err = t.store.SetQuantity(index, parseQuantity(quantities[index]))
	return err
}

func (t *terminal) removeItem(c context.Context, customer Customer, rawIndex string) error {
	t.Lock()
	defer t.Unlock()

	t.customer = customer

	index, err := parseIndex(rawIndex)
	if err != nil {
		return err
	}

	return t.store.RemoveItem(index)
}

// submit sends the cart to the sale backend. Quantities posted along with it are applied
// first; when one of them cannot be stored as typed nothing is sent. The lock is not held
// during the call, so the cart stays editable. A second submission while one is in flight
// is not prevented.
func (t *terminal) submit(c context.Context, customer Customer, quantities map[int]string) error {
	t.Lock()
	t.customer = customer
	err := t.applyQuantities(quantities)
	if err != nil {
		t.Unlock()
		return err
	}
	lines, err := t.store.ToSubmissionPayload()
	if err != nil {
		t.Unlock()
		return err
	}
	if t.inFlight > 0 {
		t.logger.Log(c, customer.DNI, mylog.SeverityWarn, "Submitting while %d other submissions are in flight", t.inFlight)
	}
	t.inFlight++
	t.Unlock()

	err = t.client.Submit(c, customer, lines)

	t.Lock()
	t.inFlight--
	t.Unlock()

	return err
}

// applyQuantities stores the posted quantities that differ from the cart. Must be called
// with the lock held.
func (t *terminal) applyQuantities(quantities map[int]string) error {
	indices := slices.Sorted(maps.Keys(quantities))

	items := t.store.Items()
	for _, index := range indices {
		requested := parseQuantity(quantities[index])
		if index >= 0 && index < len(items) && items[index].Quantity == requested {
			continue
		}

		stored, err := t.store.SetQuantity(index, requested)
		if err != nil {
			return err
		}
		if stored != requested {
			return ErrQuantityAdjusted
		}
	}

	return nil
}

func (t *terminal) page(notice *cart.Notice) (PageInfo, error) {
	t.Lock()
	defer t.Unlock()

	rows, err := t.renderer.HTML()
	if err != nil {
		return PageInfo{}, err
	}

	var revenue *sale.WeeklyRevenue
	if t.dashboard != nil {
		revenue = &t.dashboard.WeeklyRevenue
	}
	chart, hasChart, err := weeklyRevenueChart(revenue)
	if err != nil {
		return PageInfo{}, err
	}

	return PageInfo{
		Notice:    notice,
		Catalog:   t.catalog,
		Selection: t.renderer.Selection(),
		CartRows:  rows,
		ItemCount: t.store.Len(),
		Total:     t.store.Total().StringFixed(2),
		Customer:  t.customer,
		Products:  t.products,
		Sales:     t.sales,
		Dashboard: t.dashboard,
		Chart:     chart,
		HasChart:  hasChart,
	}, nil
}
