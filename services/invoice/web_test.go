package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/salesbackend/lib/myconfig"
	"github.com/MarcGrol/salesbackend/lib/myevents"
	"github.com/MarcGrol/salesbackend/lib/mypubsub"
	"github.com/MarcGrol/salesbackend/lib/mystore"
	"github.com/MarcGrol/salesbackend/lib/mytime"
	"github.com/MarcGrol/salesbackend/services/sale/saleevents"
)

func TestInvoiceService(t *testing.T) {

	t.Run("Mail invoice on sale registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, store, nower, mailer := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, mail Mail) error {
			assert.Equal(t, "ana@example.com", mail.To)
			assert.Equal(t, "Factura de su compra", mail.Subject)
			assert.Equal(t, "factura.pdf", mail.AttachmentName)
			assert.True(t, bytes.HasPrefix(mail.Attachment, []byte("%PDF-")))
			return nil
		})

		// when
		response := postEvent(t, router, "sale.registered", saleRegistered)

		// then
		assert.Equal(t, 200, response.Code)
		invoice, exists, _ := store.Get(ctx, "sale-uid-1")
		assert.True(t, exists)
		assert.Equal(t, 12, invoice.Number)
		assert.Equal(t, int64(452), invoice.TotalInCents)
		assert.True(t, invoice.IsMailed())
		assert.True(t, invoice.MailingSince.IsZero())
	})

	t.Run("Redelivered event is not mailed twice", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, store, _, _ := setup(t, ctrl)

		// given
		mailedAt := mytime.ExampleTime
		invoice := newInvoice(saleRegistered)
		invoice.MailedAt = &mailedAt
		store.Put(ctx, invoice.SaleUID, invoice)

		// when
		response := postEvent(t, router, "sale.registered", saleRegistered)

		// then no mail is sent
		assert.Equal(t, 200, response.Code)
	})

	t.Run("Mail failure is retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, store, nower, mailer := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp unavailable"))

		// when
		response := postEvent(t, router, "sale.registered", saleRegistered)

		// then pubsub will deliver again
		assert.Equal(t, 503, response.Code)

		// and the invoice is recorded, not mailed and not claimed
		invoice, exists, _ := store.Get(ctx, "sale-uid-1")
		assert.True(t, exists)
		assert.False(t, invoice.IsMailed())
		assert.True(t, invoice.MailingSince.IsZero())
		assert.Equal(t, 200, getPDF(t, router, "sale-uid-1").Code)
	})

	t.Run("Mailing in progress elsewhere", func(t *testing.T) {
		testCases := []struct {
			name         string
			claimedAgo   time.Duration
			expectMailed bool
			expectStatus int
		}{
			{name: "recent claim is respected", claimedAgo: time.Minute, expectStatus: 503},
			{name: "stale claim is taken over", claimedAgo: 10 * time.Minute, expectMailed: true, expectStatus: 200},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				ctx, router, store, nower, mailer := setup(t, ctrl)

				invoice := newInvoice(saleRegistered)
				invoice.MailingSince = mytime.ExampleTime.Add(-tc.claimedAgo)
				store.Put(ctx, invoice.SaleUID, invoice)

				nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
				if tc.expectMailed {
					mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
				}

				response := postEvent(t, router, "sale.registered", saleRegistered)

				assert.Equal(t, tc.expectStatus, response.Code)
				stored, _, _ := store.Get(ctx, invoice.SaleUID)
				assert.Equal(t, tc.expectMailed, stored.IsMailed())
			})
		}
	})

	t.Run("Concurrent redeliveries mail once", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, store, nower, mailer := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		// when
		codes := make(chan int, 2)
		wg := sync.WaitGroup{}
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes <- postEvent(t, router, "sale.registered", saleRegistered).Code
			}()
		}
		wg.Wait()
		close(codes)

		// then one delivery mails, the other is skipped or asked to retry
		got := []int{}
		for code := range codes {
			got = append(got, code)
		}
		assert.Contains(t, got, 200)
		invoice, _, _ := store.Get(ctx, "sale-uid-1")
		assert.True(t, invoice.IsMailed())
	})

	t.Run("Unknown event", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := postEvent(t, router, "sale.cancelled", saleRegistered)

		// then
		assert.Equal(t, 501, response.Code)
	})

	t.Run("Malformed push request", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/invoice/event", strings.NewReader(`{"message":`))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 400, response.Code)
	})

	t.Run("Download invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, store, _, _ := setup(t, ctrl)

		// given
		invoice := newInvoice(saleRegistered)
		store.Put(ctx, invoice.SaleUID, invoice)

		// when
		response := getPDF(t, router, "sale-uid-1")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "application/pdf", response.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(response.Body.Bytes(), []byte("%PDF-")))
	})

	t.Run("Download invoice not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := getPDF(t, router, "sale-uid-1")

		// then
		assert.Equal(t, 404, response.Code)
	})
}

func postEvent(t *testing.T, router *mux.Router, eventTypeName string, event saleevents.SaleRegistered) *httptest.ResponseRecorder {
	eventBytes, err := json.Marshal(event)
	assert.NoError(t, err)

	body, err := myevents.NewPushRequest("sale-push", myevents.EventEnvelope{
		UID:           "envelope-1",
		CreatedAt:     mytime.ExampleTime,
		Topic:         saleevents.TopicName,
		AggregateUID:  event.SaleUID,
		EventTypeName: eventTypeName,
		EventPayload:  string(eventBytes),
	})
	assert.NoError(t, err)

	request, err := http.NewRequest(http.MethodPost, "/api/invoice/event", bytes.NewReader(body))
	assert.NoError(t, err)
	request.Host = "localhost:8888"
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func getPDF(t *testing.T, router *mux.Router, saleUID string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(http.MethodGet, "/invoice/"+saleUID+"/pdf", nil)
	assert.NoError(t, err)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Invoice], *mytime.MockNower, *MockMailer) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("PORT", "")

	c := context.TODO()
	store, _, err := mystore.NewInMemoryStore[Invoice](c)
	assert.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)
	subscriber := mypubsub.NewMockPubSub(ctrl)
	mailer := NewMockMailer(ctrl)

	sut := NewWebService(store, subscriber, mailer, nower, myconfig.Company{Name: "Distribuidora La Rioja"})
	router := mux.NewRouter()

	// These are called by the following call to RegisterEndpoints()
	subscriber.EXPECT().CreateTopic(c, saleevents.TopicName).Return(nil)
	subscriber.EXPECT().Subscribe(c, saleevents.TopicName, "http://localhost:8080/api/invoice/event").Return(nil)

	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, store, nower, mailer
}
