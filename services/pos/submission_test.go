package pos

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/salesbackend/lib/myhttpclient"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/services/pos/cart"
)

func TestSubmissionClient(t *testing.T) {
	customer := Customer{Name: "Ana", DNI: "30111222", Email: "ana@example.com"}
	lines := []cart.SaleLine{{ProductID: 7, Quantity: 2}, {ProductID: 8, Quantity: 1}}

	t.Run("Success", func(t *testing.T) {
		var method, path string
		received := map[string]any{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			path = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &received)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		sut := newSubmissionClient(myhttpclient.New(0), server.URL, mylog.New("test"))

		err := sut.Submit(context.TODO(), customer, lines)

		assert.NoError(t, err)
		assert.Equal(t, http.MethodPost, method)
		assert.Equal(t, "/venta/nueva", path)
		assert.Equal(t, map[string]any{
			"nombre_cliente": "Ana",
			"dni_cliente":    "30111222",
			"email_cliente":  "ana@example.com",
			"productos": []any{
				map[string]any{"producto_id": float64(7), "cantidad": float64(2)},
				map[string]any{"producto_id": float64(8), "cantidad": float64(1)},
			},
		}, received)
	})

	t.Run("Any 2xx is success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		sut := newSubmissionClient(myhttpclient.New(0), server.URL, mylog.New("test"))

		err := sut.Submit(context.TODO(), customer, lines)

		assert.NoError(t, err)
	})

	t.Run("Rejected", func(t *testing.T) {
		testCases := []int{http.StatusBadRequest, http.StatusConflict, http.StatusNotFound, http.StatusInternalServerError}
		for _, status := range testCases {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))

			sut := newSubmissionClient(myhttpclient.New(0), server.URL, mylog.New("test"))

			err := sut.Submit(context.TODO(), customer, lines)
			server.Close()

			assert.ErrorIs(t, err, ErrSaleRejected, "status %d", status)
		}
	})

	t.Run("Transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		sut := newSubmissionClient(myhttpclient.New(0), url, mylog.New("test"))

		err := sut.Submit(context.TODO(), customer, lines)

		assert.ErrorIs(t, err, ErrSaleTransport)
	})
}
