package sale

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MarcGrol/salesbackend/lib/myerrors"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/services/sale/saleevents"
)

const (
	productSequence = "product"
	saleSequence    = "sale"
)

func (s *service) listProducts(c context.Context) ([]Product, error) {
	products, err := s.productStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (s *service) listSales(c context.Context) ([]Sale, error) {
	sales, err := s.saleStore.Query(c, nil, "-CreatedAt")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	return sales, nil
}

func (s *service) addProduct(c context.Context, form ProductForm) (Product, error) {
	product, err := productFromForm(form)
	if err != nil {
		return Product{}, err
	}

	err = s.productStore.RunInTransaction(c, func(c context.Context) error {
		product.ID, err = s.nextID(c, productSequence)
		if err != nil {
			return err
		}

		err = s.productStore.Put(c, product.UID(), product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}

	s.logger.Log(c, product.UID(), mylog.SeverityInfo, "Added product %d (%s)", product.ID, product.Name)

	return product, nil
}

func (s *service) editProduct(c context.Context, productID int, form ProductForm) (Product, error) {
	edited, err := productFromForm(form)
	if err != nil {
		return Product{}, err
	}
	edited.ID = productID

	err = s.productStore.RunInTransaction(c, func(c context.Context) error {
		_, found, err := s.productStore.Get(c, edited.UID())
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundErrorf("product with id %d not found", productID)
		}

		err = s.productStore.Put(c, edited.UID(), edited)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}

	s.logger.Log(c, edited.UID(), mylog.SeverityInfo, "Edited product %d (%s)", edited.ID, edited.Name)

	return edited, nil
}

func (s *service) deleteProduct(c context.Context, productID int) error {
	uid := strconv.Itoa(productID)

	err := s.productStore.RunInTransaction(c, func(c context.Context) error {
		_, found, err := s.productStore.Get(c, uid)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundErrorf("product with id %d not found", productID)
		}

		err = s.productStore.Delete(c, uid)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Log(c, uid, mylog.SeverityInfo, "Deleted product %d", productID)

	return nil
}

// importProducts stores products read from a seed file under fresh ids.
func (s *service) importProducts(c context.Context, forms []ProductForm) (int, error) {
	count := 0
	for _, form := range forms {
		_, err := s.addProduct(c, form)
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// registerSale validates every line before anything is written: the sale is either stored
// completely or not at all.
func (s *service) registerSale(c context.Context, req SaleRequest) (Sale, error) {
	err := validateSaleRequest(req)
	if err != nil {
		return Sale{}, err
	}

	customer := Customer{
		DNI:   strings.TrimSpace(req.CustomerDNI),
		Name:  strings.TrimSpace(req.CustomerName),
		Email: strings.TrimSpace(req.CustomerEmail),
	}

	sale := Sale{
		UID:       s.uuider.Create(),
		CreatedAt: s.nower.Now(),
	}

	err = s.productStore.RunInTransaction(c, func(c context.Context) error {
		products := map[int]Product{}
		for _, line := range req.Lines {
			product, found := products[line.ProductID]
			if !found {
				var err error
				product, found, err = s.productStore.Get(c, strconv.Itoa(line.ProductID))
				if err != nil {
					return myerrors.NewInternalError(err)
				}
				if !found {
					return myerrors.NewConflictError(fmt.Errorf("product with id %d does not exist", line.ProductID))
				}
			}
			if line.Quantity <= 0 {
				return myerrors.NewConflictError(fmt.Errorf("quantity %d of product %d must be positive", line.Quantity, line.ProductID))
			}
			if product.Stock < line.Quantity {
				return myerrors.NewConflictError(fmt.Errorf("insufficient stock for product %d: requested %d, available %d", line.ProductID, line.Quantity, product.Stock))
			}

			product.Stock -= line.Quantity
			products[product.ID] = product

			sale.Items = append(sale.Items, SaleItem{
				ProductID:        product.ID,
				ProductName:      product.Name,
				Quantity:         line.Quantity,
				UnitPriceInCents: product.PriceInCents,
			})
			sale.TotalInCents += product.PriceInCents * int64(line.Quantity)
		}

		registered, err := s.findOrCreateCustomer(c, customer)
		if err != nil {
			return err
		}
		sale.CustomerDNI = registered.DNI
		sale.Customer = registered

		sale.ID, err = s.nextID(c, saleSequence)
		if err != nil {
			return err
		}

		for _, product := range products {
			err = s.productStore.Put(c, product.UID(), product)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}

		err = s.saleStore.Put(c, sale.UID, sale)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, saleevents.TopicName, saleRegisteredEvent(sale))
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Sale{}, err
	}

	s.logger.Log(c, sale.UID, mylog.SeverityInfo, "Registered sale %d for customer %s: %d lines, total %s", sale.ID, sale.CustomerDNI, len(sale.Items), sale.Total().StringFixed(2))

	return sale, nil
}

func (s *service) findOrCreateCustomer(c context.Context, customer Customer) (Customer, error) {
	existing, found, err := s.customerStore.Get(c, customer.DNI)
	if err != nil {
		return Customer{}, myerrors.NewInternalError(err)
	}
	if found {
		return existing, nil
	}

	err = s.customerStore.Put(c, customer.DNI, customer)
	if err != nil {
		return Customer{}, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, customer.DNI, mylog.SeverityInfo, "Created customer %s (%s)", customer.DNI, customer.Name)

	return customer, nil
}

func (s *service) nextID(c context.Context, name string) (int, error) {
	var next int
	err := s.sequenceStore.RunInTransaction(c, func(c context.Context) error {
		sequence, _, err := s.sequenceStore.Get(c, name)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		sequence.Name = name
		sequence.Last++

		err = s.sequenceStore.Put(c, name, sequence)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		next = sequence.Last
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func validateSaleRequest(req SaleRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return myerrors.NewInvalidInputErrorf("missing nombre_cliente")
	}
	if strings.TrimSpace(req.CustomerDNI) == "" {
		return myerrors.NewInvalidInputErrorf("missing dni_cliente")
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return myerrors.NewInvalidInputErrorf("missing email_cliente")
	}
	if len(req.Lines) == 0 {
		return myerrors.NewInvalidInputErrorf("productos must contain at least one line")
	}
	return nil
}

func productFromForm(form ProductForm) (Product, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return Product{}, myerrors.NewInvalidInputErrorf("missing nombre")
	}

	priceInCents, err := parseCents(strings.TrimSpace(form.Price))
	if err != nil {
		return Product{}, myerrors.NewInvalidInputError(err)
	}

	stock, err := strconv.Atoi(strings.TrimSpace(form.Stock))
	if err != nil || stock < 0 {
		return Product{}, myerrors.NewInvalidInputErrorf("invalid stock %q", form.Stock)
	}

	return Product{
		Name:         name,
		PriceInCents: priceInCents,
		Stock:        stock,
	}, nil
}

func saleRegisteredEvent(sale Sale) saleevents.SaleRegistered {
	lines := make([]saleevents.Line, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, saleevents.Line{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			UnitPriceInCents: item.UnitPriceInCents,
		})
	}

	return saleevents.SaleRegistered{
		SaleUID:   sale.UID,
		SaleID:    sale.ID,
		CreatedAt: sale.CreatedAt,
		Customer: saleevents.Customer{
			DNI:   sale.Customer.DNI,
			Name:  sale.Customer.Name,
			Email: sale.Customer.Email,
		},
		Lines:        lines,
		TotalInCents: sale.TotalInCents,
	}
}
