package pos

import (
	"bytes"
	"html/template"

	"github.com/MarcGrol/salesbackend/services/pos/cart"
)

type Row struct {
	Index     int
	Name      string
	UnitPrice string
	Quantity  int
	Min       int
	Max       int
}

// renderer keeps the cart rows and the product selection control in sync with the cart.
// Rows are always rebuilt from scratch.
type renderer struct {
	rows      []Row
	selection string
}

func newRenderer() *renderer {
	return &renderer{
		rows: []Row{},
	}
}

func (r *renderer) ItemsChanged(items []cart.LineItem) {
	r.rows = make([]Row, 0, len(items))
	for index, item := range items {
		r.rows = append(r.rows, Row{
			Index:     index,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			Min:       1,
			Max:       item.AvailableStock,
		})
	}
}

func (r *renderer) QuantityChanged(index int, quantity int) {
	if index < 0 || index >= len(r.rows) {
		return
	}
	r.rows[index].Quantity = quantity
}

func (r *renderer) SelectionCleared() {
	r.selection = ""
}

func (r *renderer) Select(value string) {
	r.selection = value
}

func (r *renderer) Selection() string {
	return r.selection
}

func (r *renderer) Rows() []Row {
	rows := make([]Row, len(r.rows))
	copy(rows, r.rows)
	return rows
}

func (r *renderer) HTML() (template.HTML, error) {
	buf := bytes.Buffer{}
	err := cartRowsTemplate.Execute(&buf, r.rows)
	if err != nil {
		return "", err
	}
	// produced by html/template, so already escaped
	return template.HTML(buf.String()), nil
}
