package sale

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/salesbackend/lib/mypublisher"
	"github.com/MarcGrol/salesbackend/lib/mystore"
	"github.com/MarcGrol/salesbackend/lib/mytime"
	"github.com/MarcGrol/salesbackend/lib/myuuid"
	"github.com/MarcGrol/salesbackend/services/sale/saleevents"
)

var (
	coke  = Product{ID: 7, Name: "Coke (500ml)", PriceInCents: 150, Stock: 3}
	water = Product{ID: 8, Name: "Water", PriceInCents: 90, Stock: 10}
)

func TestProductEndpoints(t *testing.T) {

	t.Run("Add product", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, stores, _, _, _ := setup(t, ctrl)

		// when
		response := postForm(t, router, "/producto/agregar", url.Values{
			"nombre": {"Sprite"},
			"precio": {"1.40"},
			"stock":  {"12"},
		})

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "/", response.Header().Get("Location"))
		product, exists, _ := stores.Products.Get(ctx, "1")
		assert.True(t, exists)
		assert.Equal(t, Product{ID: 1, Name: "Sprite", PriceInCents: 140, Stock: 12}, product)
	})

	t.Run("Add product gets next id", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, stores, _, _, _ := setup(t, ctrl)

		// given
		postForm(t, router, "/producto/agregar", url.Values{"nombre": {"Sprite"}, "precio": {"1.40"}, "stock": {"12"}})

		// when
		response := postForm(t, router, "/producto/agregar", url.Values{"nombre": {"Fanta"}, "precio": {"1.45"}, "stock": {"4"}})

		// then
		assert.Equal(t, 303, response.Code)
		product, exists, _ := stores.Products.Get(ctx, "2")
		assert.True(t, exists)
		assert.Equal(t, "Fanta", product.Name)
	})

	t.Run("Add invalid product", func(t *testing.T) {
		testCases := []struct {
			name   string
			values url.Values
		}{
			{name: "missing name", values: url.Values{"precio": {"1.40"}, "stock": {"12"}}},
			{name: "invalid price", values: url.Values{"nombre": {"Sprite"}, "precio": {"cheap"}, "stock": {"12"}}},
			{name: "negative price", values: url.Values{"nombre": {"Sprite"}, "precio": {"-1"}, "stock": {"12"}}},
			{name: "invalid stock", values: url.Values{"nombre": {"Sprite"}, "precio": {"1.40"}, "stock": {"many"}}},
			{name: "negative stock", values: url.Values{"nombre": {"Sprite"}, "precio": {"1.40"}, "stock": {"-3"}}},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				ctx, router, stores, _, _, _ := setup(t, ctrl)

				response := postForm(t, router, "/producto/agregar", tc.values)

				assert.Equal(t, 400, response.Code)
				products, _ := stores.Products.List(ctx)
				assert.Empty(t, products)
			})
		}
	})

	t.Run("Edit product", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.Products.Put(ctx, coke.UID(), coke)

		// when
		response := postForm(t, router, "/producto/editar/7", url.Values{
			"nombre": {"Coke zero"},
			"precio": {"1.65"},
			"stock":  {"20"},
		})

		// then
		assert.Equal(t, 303, response.Code)
		product, _, _ := stores.Products.Get(ctx, "7")
		assert.Equal(t, Product{ID: 7, Name: "Coke zero", PriceInCents: 165, Stock: 20}, product)
	})

	t.Run("Edit product not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		response := postForm(t, router, "/producto/editar/7", url.Values{
			"nombre": {"Coke zero"},
			"precio": {"1.65"},
			"stock":  {"20"},
		})

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Delete product", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.Products.Put(ctx, coke.UID(), coke)

		// when
		response := getRequest(t, router, "/producto/eliminar/7")

		// then
		assert.Equal(t, 303, response.Code)
		_, exists, _ := stores.Products.Get(ctx, "7")
		assert.False(t, exists)
	})

	t.Run("Delete product not exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		_, router, _, _, _, _ := setup(t, ctrl)

		// when
		response := getRequest(t, router, "/producto/eliminar/7")

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("List products", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, stores, _, _, _ := setup(t, ctrl)

		// given
		stores.Products.Put(ctx, water.UID(), water)
		stores.Products.Put(ctx, coke.UID(), coke)

		// when
		response := getRequest(t, router, "/api/producto")

		// then
		assert.Equal(t, 200, response.Code)
		products := []Product{}
		err := json.Unmarshal(response.Body.Bytes(), &products)
		assert.NoError(t, err)
		assert.Equal(t, []Product{coke, water}, products)
	})
}

func TestRegisterSale(t *testing.T) {

	t.Run("Register sale for new customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, stores, nower, uuider, publisher := setup(t, ctrl)

		// given
		stores.Products.Put(ctx, coke.UID(), coke)
		stores.Products.Put(ctx, water.UID(), water)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("sale-uid-1")
		publisher.EXPECT().Publish(gomock.Any(), saleevents.TopicName, saleevents.SaleRegistered{
			SaleUID:   "sale-uid-1",
			SaleID:    1,
			CreatedAt: mytime.ExampleTime,
			Customer:  saleevents.Customer{DNI: "30111222", Name: "Ana", Email: "ana@example.com"},
			Lines: []saleevents.Line{
				{ProductID: 7, ProductName: "Coke (500ml)", Quantity: 2, UnitPriceInCents: 150},
				{ProductID: 8, ProductName: "Water", Quantity: 1, UnitPriceInCents: 90},
			},
			TotalInCents: 390,
		}).Return(nil)

		// when
		response := postJSON(t, router, "/venta/nueva", `{
			"nombre_cliente": "Ana",
			"dni_cliente": "30111222",
			"email_cliente": "ana@example.com",
			"productos": [{"producto_id": 7, "cantidad": 2}, {"producto_id": 8, "cantidad": 1}]
		}`)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "sale registered")

		product, _, _ := stores.Products.Get(ctx, "7")
		assert.Equal(t, 1, product.Stock)
		product, _, _ = stores.Products.Get(ctx, "8")
		assert.Equal(t, 9, product.Stock)

		customer, exists, _ := stores.Customers.Get(ctx, "30111222")
		assert.True(t, exists)
		assert.Equal(t, "Ana", customer.Name)

		sale, exists, _ := stores.Sales.Get(ctx, "sale-uid-1")
		assert.True(t, exists)
		assert.Equal(t, 1, sale.ID)
		assert.Equal(t, int64(390), sale.TotalInCents)
		assert.Equal(t, "30111222", sale.CustomerDNI)
		assert.Len(t, sale.Items, 2)
	})

	t.Run("Register sale for existing customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		ctx, router, stores, nower, uuider, publisher := setup(t, ctrl)

		// given
		stores.Products.Put(ctx, water.UID(), water)
		stores.Customers.Put(ctx, "30111222", Customer{DNI: "30111222", Name: "Ana Perez", Email: "ana@perez.com"})
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("sale-uid-2")
		publisher.EXPECT().Publish(gomock.Any(), saleevents.TopicName, gomock.Any()).Return(nil)

		// when
		response := postJSON(t, router, "/venta/nueva", `{
			"nombre_cliente": "Ana",
			"dni_cliente": "30111222",
			"email_cliente": "ana@example.com",
			"productos": [{"producto_id": 8, "cantidad": 3}]
		}`)

		// then
		assert.Equal(t, 200, response.Code)
		sale, _, _ := stores.Sales.Get(ctx, "sale-uid-2")
		assert.Equal(t, Customer{DNI: "30111222", Name: "Ana Perez", Email: "ana@perez.com"}, sale.Customer)
	})

	t.Run("Reject sale that cannot be fulfilled", func(t *testing.T) {
		testCases := []struct {
			name     string
			products string
		}{
			{name: "insufficient stock", products: `[{"producto_id": 8, "cantidad": 1}, {"producto_id": 7, "cantidad": 4}]`},
			{name: "insufficient stock over repeated lines", products: `[{"producto_id": 7, "cantidad": 2}, {"producto_id": 7, "cantidad": 2}]`},
			{name: "unknown product", products: `[{"producto_id": 8, "cantidad": 1}, {"producto_id": 99, "cantidad": 1}]`},
			{name: "zero quantity", products: `[{"producto_id": 8, "cantidad": 0}]`},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				ctx, router, stores, nower, uuider, _ := setup(t, ctrl)

				// given
				stores.Products.Put(ctx, coke.UID(), coke)
				stores.Products.Put(ctx, water.UID(), water)
				nower.EXPECT().Now().Return(mytime.ExampleTime)
				uuider.EXPECT().Create().Return("sale-uid-3")

				// when
				response := postJSON(t, router, "/venta/nueva", `{
					"nombre_cliente": "Ana",
					"dni_cliente": "30111222",
					"email_cliente": "ana@example.com",
					"productos": `+tc.products+`
				}`)

				// then nothing has been changed
				assert.Equal(t, 409, response.Code)
				product, _, _ := stores.Products.Get(ctx, "7")
				assert.Equal(t, 3, product.Stock)
				product, _, _ = stores.Products.Get(ctx, "8")
				assert.Equal(t, 10, product.Stock)
				_, exists, _ := stores.Customers.Get(ctx, "30111222")
				assert.False(t, exists)
				sales, _ := stores.Sales.List(ctx)
				assert.Empty(t, sales)
			})
		}
	})

	t.Run("Reject invalid sale request", func(t *testing.T) {
		testCases := []struct {
			name string
			body string
		}{
			{name: "malformed json", body: `{"nombre_cliente": `},
			{name: "missing name", body: `{"dni_cliente": "1", "email_cliente": "a@b.c", "productos": [{"producto_id": 7, "cantidad": 1}]}`},
			{name: "missing dni", body: `{"nombre_cliente": "Ana", "email_cliente": "a@b.c", "productos": [{"producto_id": 7, "cantidad": 1}]}`},
			{name: "missing email", body: `{"nombre_cliente": "Ana", "dni_cliente": "1", "productos": [{"producto_id": 7, "cantidad": 1}]}`},
			{name: "no products", body: `{"nombre_cliente": "Ana", "dni_cliente": "1", "email_cliente": "a@b.c", "productos": []}`},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				_, router, _, _, _, _ := setup(t, ctrl)

				response := postJSON(t, router, "/venta/nueva", tc.body)

				assert.Equal(t, 400, response.Code)
			})
		}
	})
}

func TestDashboardEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)

	// setup
	ctx, router, stores, nower, _, _ := setup(t, ctrl)

	// given
	stores.Products.Put(ctx, coke.UID(), coke)
	stores.Products.Put(ctx, water.UID(), water)
	stores.Sales.Put(ctx, "1", Sale{UID: "1", ID: 1, CreatedAt: mytime.ExampleTime.Add(-time.Hour), TotalInCents: 300,
		Items: []SaleItem{{ProductID: 7, ProductName: "Coke (500ml)", Quantity: 2, UnitPriceInCents: 150}}})
	nower.EXPECT().Now().Return(mytime.ExampleTime)

	// when
	response := getRequest(t, router, "/api/dashboard")

	// then
	assert.Equal(t, 200, response.Code)
	dashboard := Dashboard{}
	err := json.Unmarshal(response.Body.Bytes(), &dashboard)
	assert.NoError(t, err)
	assert.Equal(t, 13, dashboard.TotalStock)
	assert.Equal(t, int64(300), dashboard.TotalRevenueInCents)
	assert.Equal(t, 1, dashboard.SalesToday)
	assert.Equal(t, []ProductSales{{Name: "Coke (500ml)", Quantity: 2}}, dashboard.TopProducts)
	assert.Equal(t, "Mon 27/02", dashboard.WeeklyRevenue.Labels[6])
	assert.Equal(t, 3.0, dashboard.WeeklyRevenue.Datos[6])
}

func postForm(t *testing.T, router *mux.Router, path string, values url.Values) *httptest.ResponseRecorder {
	request, err := http.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	assert.NoError(t, err)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Host = "localhost:8888"
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func postJSON(t *testing.T, router *mux.Router, path string, body string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	assert.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	request.Host = "localhost:8888"
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func getRequest(t *testing.T, router *mux.Router, path string) *httptest.ResponseRecorder {
	request, err := http.NewRequest(http.MethodGet, path, nil)
	assert.NoError(t, err)
	request.Host = "localhost:8888"
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, Stores, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	c := context.TODO()
	stores := Stores{
		Products:  newInMemoryStore[Product](t, c),
		Customers: newInMemoryStore[Customer](t, c),
		Sales:     newInMemoryStore[Sale](t, c),
		Sequences: newInMemoryStore[Sequence](t, c),
	}
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	sut := NewWebService(stores, nower, uuider, publisher)
	router := mux.NewRouter()

	// Called by the following call to RegisterEndpoints()
	publisher.EXPECT().CreateTopic(c, saleevents.TopicName).Return(nil)

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, stores, nower, uuider, publisher
}

func newInMemoryStore[T any](t *testing.T, c context.Context) mystore.Store[T] {
	store, _, err := mystore.NewInMemoryStore[T](c)
	assert.NoError(t, err)
	return store
}
