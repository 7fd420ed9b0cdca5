package cart

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// Store owns the cart of a single sale in progress. It guarantees that:
//   - no two items share a product id
//   - every quantity lies within [1, AvailableStock]
//
// Store is not safe for concurrent use.
type Store struct {
	items    []LineItem
	listener Listener
}

func NewStore(listener Listener) *Store {
	return &Store{
		items:    []LineItem{},
		listener: listener,
	}
}

func (s *Store) AddItem(candidate *Candidate) error {
	if candidate == nil || candidate.ID == "" {
		return ErrNothingSelected
	}

	if s.indexOf(candidate.ID) >= 0 {
		return ErrDuplicateProduct
	}

	if candidate.AvailableStock < 1 {
		return ErrOutOfStock
	}

	s.items = append(s.items, LineItem{
		ID:             candidate.ID,
		Name:           candidate.Name,
		UnitPrice:      candidate.UnitPrice,
		AvailableStock: candidate.AvailableStock,
		Quantity:       1,
	})

	s.listener.ItemsChanged(s.Items())
	s.listener.SelectionCleared()

	return nil
}

// SetQuantity stores the requested quantity clamped to [1, AvailableStock] and returns the
// stored value. When lowered to the stock, ErrExceedsStock is returned but the value is stored.
func (s *Store) SetQuantity(index int, requested int) (int, error) {
	if !s.validIndex(index) {
		return 0, ErrNoSuchItem
	}

	item := &s.items[index]

	var notice error
	quantity := requested
	if quantity < 1 {
		quantity = 1
	} else if quantity > item.AvailableStock {
		quantity = item.AvailableStock
		notice = ErrExceedsStock
	}

	item.Quantity = quantity
	s.listener.QuantityChanged(index, quantity)

	return quantity, notice
}

func (s *Store) RemoveItem(index int) error {
	if !s.validIndex(index) {
		return ErrNoSuchItem
	}

	s.items = slices.Delete(s.items, index, index+1)

	s.listener.ItemsChanged(s.Items())

	return nil
}

func (s *Store) ToSubmissionPayload() ([]SaleLine, error) {
	if len(s.items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]SaleLine, 0, len(s.items))
	for _, item := range s.items {
		productID, err := strconv.Atoi(item.ID)
		if err != nil {
			return nil, fmt.Errorf("product id %q is not numeric: %s", item.ID, err)
		}
		lines = append(lines, SaleLine{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	return lines, nil
}

// Items returns a copy; callers cannot mutate the cart through it.
func (s *Store) Items() []LineItem {
	return slices.Clone(s.items)
}

func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item LineItem) bool {
		return item.ID == id
	})
}

func (s *Store) validIndex(index int) bool {
	return index >= 0 && index < len(s.items)
}
