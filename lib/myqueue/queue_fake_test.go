package myqueue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeQueue(t *testing.T) {
	c := context.TODO()

	t.Run("record only", func(t *testing.T) {
		queue, cleanup, err := New(c, Config{})
		assert.NoError(t, err)
		defer cleanup()

		err = queue.Enqueue(c, Task{UID: "1", WebhookURLPath: "/pubsub/sale/1"})
		assert.NoError(t, err)
		assert.Len(t, queue.(*fakeTaskQueue).tasks, 1)
	})

	t.Run("deliver locally", func(t *testing.T) {
		received := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			received <- r.Method + " " + r.URL.Path + " " + string(body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		queue, cleanup, err := New(c, Config{LocalBaseURL: server.URL})
		assert.NoError(t, err)
		defer cleanup()

		err = queue.Enqueue(c, Task{UID: "1", WebhookURLPath: "/pubsub/sale/1", Payload: []byte("x")})
		assert.NoError(t, err)

		select {
		case got := <-received:
			assert.Equal(t, "PUT /pubsub/sale/1 x", got)
		case <-time.After(5 * time.Second):
			t.Fatal("task was not delivered")
		}
	})
}
