package myevents

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEventEnvelope(t *testing.T) {
	t.Run("Valid push request", func(t *testing.T) {
		envelope := EventEnvelope{
			UID:           "abc",
			CreatedAt:     time.Date(2023, 2, 27, 23, 58, 59, 0, time.UTC),
			Topic:         "sale",
			AggregateUID:  "sale-1",
			EventTypeName: "sale.registered",
			EventPayload:  `{"SaleUID":"sale-1"}`,
		}
		body, err := NewPushRequest("sale-invoice", envelope)
		assert.NoError(t, err)

		got, err := ParseEventEnvelope(bytes.NewReader(body))
		assert.NoError(t, err)
		assert.Equal(t, envelope, got)
		assert.Equal(t, "sale.sale.registered.sale-1", got.String())
	})

	t.Run("Invalid push request", func(t *testing.T) {
		_, err := ParseEventEnvelope(strings.NewReader("{"))
		assert.Error(t, err)
	})
}
