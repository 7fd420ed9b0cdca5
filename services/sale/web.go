package sale

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/salesbackend/lib/mycontext"
	"github.com/MarcGrol/salesbackend/lib/myerrors"
	"github.com/MarcGrol/salesbackend/lib/myhttp"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/lib/mypublisher"
	"github.com/MarcGrol/salesbackend/lib/mytime"
	"github.com/MarcGrol/salesbackend/lib/myuuid"
	"github.com/MarcGrol/salesbackend/services/sale/saleevents"
)

type webService struct {
	logger      mylog.Logger
	service     *service
	formDecoder *form.Decoder
	publisher   mypublisher.Publisher
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(stores Stores, nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) *webService {
	logger := mylog.New("sale")
	return &webService{
		logger:      logger,
		service:     newService(stores, nower, uuider, logger, pub),
		formDecoder: form.NewDecoder(),
		publisher:   pub,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/producto/agregar", s.addProductPage()).Methods("POST")
	router.HandleFunc("/producto/eliminar/{id}", s.deleteProductPage()).Methods("GET")
	router.HandleFunc("/producto/editar/{id}", s.editProductPage()).Methods("POST")

	router.HandleFunc("/venta/nueva", s.registerSale()).Methods("POST")

	router.HandleFunc("/api/producto", s.listProducts()).Methods("GET")
	router.HandleFunc("/api/venta", s.listSales()).Methods("GET")
	router.HandleFunc("/api/dashboard", s.getDashboard()).Methods("GET")

	return s.Subscribe(c)
}

func (s *webService) Subscribe(c context.Context) error {
	err := s.publisher.CreateTopic(c, saleevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", saleevents.TopicName, err)
	}

	return nil
}

// Products, Sales and Dashboard serve the terminal page in-process.

func (s *webService) Products(c context.Context) ([]Product, error) {
	return s.service.listProducts(c)
}

func (s *webService) Sales(c context.Context) ([]Sale, error) {
	return s.service.listSales(c)
}

func (s *webService) Dashboard(c context.Context) (Dashboard, error) {
	return s.service.dashboard(c)
}

func (s *webService) ImportProducts(c context.Context, forms []ProductForm) (int, error) {
	return s.service.importProducts(c, forms)
}

func (s *webService) addProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productForm, err := s.parseProductForm(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		_, err = s.service.addProduct(c, productForm)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *webService) editProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := productIDFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		productForm, err := s.parseProductForm(r)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		_, err = s.service.editProduct(c, productID, productForm)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *webService) deleteProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID, err := productIDFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.service.deleteProduct(c, productID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *webService) registerSale() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := SaleRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing sale request: %s", err)))
			return
		}

		_, err = s.service.registerSale(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "sale registered",
		})
	}
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.service.listProducts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) listSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sales, err := s.service.listSales(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, sales)
	}
}

func (s *webService) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		dashboard, err := s.service.dashboard(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, dashboard)
	}
}

func (s *webService) parseProductForm(r *http.Request) (ProductForm, error) {
	err := r.ParseForm()
	if err != nil {
		return ProductForm{}, myerrors.NewInvalidInputError(err)
	}

	productForm := ProductForm{}
	err = s.formDecoder.Decode(&productForm, r.PostForm)
	if err != nil {
		return ProductForm{}, myerrors.NewInvalidInputError(fmt.Errorf("error decoding product form: %s", err))
	}

	return productForm, nil
}

func productIDFromRequest(r *http.Request) (int, error) {
	value := mux.Vars(r)["id"]
	productID, err := strconv.Atoi(value)
	if err != nil {
		return 0, myerrors.NewInvalidInputErrorf("invalid product id %q", value)
	}
	return productID, nil
}
