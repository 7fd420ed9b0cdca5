package myhttpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONHTTPClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	t.Run("Roundtrip", func(t *testing.T) {
		status, body, err := New(0).Send(context.TODO(), http.MethodPost, ts.URL+"/echo", []byte(`{"a":1}`))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, `{"a":1}`, string(body))
	})

	t.Run("Non 2xx is not an error", func(t *testing.T) {
		status, _, err := New(0).Send(context.TODO(), http.MethodGet, ts.URL+"/unknown", nil)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Transport failure", func(t *testing.T) {
		_, _, err := New(0).Send(context.TODO(), http.MethodGet, "http://127.0.0.1:1/unreachable", nil)
		assert.Error(t, err)
	})
}
