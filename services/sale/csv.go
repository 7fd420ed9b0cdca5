package sale

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadProductForms parses a seed file with records "name;price;stock". Lines starting with # are skipped.
func ReadProductForms(r io.Reader) ([]ProductForm, error) {
	forms := []ProductForm{}

	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.Comment = '#'
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading product record: %s", err)
		}

		forms = append(forms, ProductForm{
			Name:  record[0],
			Price: record[1],
			Stock: record[2],
		})
	}

	return forms, nil
}
