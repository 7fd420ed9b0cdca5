package pos

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/salesbackend/lib/mycontext"
	"github.com/MarcGrol/salesbackend/lib/myerrors"
	"github.com/MarcGrol/salesbackend/lib/myhttp"
	"github.com/MarcGrol/salesbackend/lib/myhttpclient"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/services/pos/cart"
)

//go:embed templates
var templateFolder embed.FS
var (
	terminalPageTemplate *template.Template
	cartRowsTemplate     *template.Template
)

func init() {
	terminalPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/terminal.html"))
	cartRowsTemplate = template.Must(template.ParseFS(templateFolder, "templates/cart_rows.html"))
}

type webService struct {
	logger      mylog.Logger
	terminal    *terminal
	formDecoder *form.Decoder
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(backoffice Backoffice, sender myhttpclient.HTTPSender, saleBackendURL string) *webService {
	logger := mylog.New("pos")
	return &webService{
		logger:      logger,
		terminal:    newTerminal(backoffice, newSubmissionClient(sender, saleBackendURL, logger), logger),
		formDecoder: form.NewDecoder(),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/", s.terminalPage()).Methods("GET")
	router.HandleFunc("/pos/item", s.addItemPage()).Methods("POST")
	router.HandleFunc("/pos/item/quantity", s.setQuantityPage()).Methods("POST")
	router.HandleFunc("/pos/item/remove", s.removeItemPage()).Methods("POST")
	router.HandleFunc("/pos/submit", s.submitPage()).Methods("POST")

	return nil
}

// terminalPage is a page load: it always starts a new sale.
func (s *webService) terminalPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.terminal.reload(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.writePage(c, w, errorWriter, nil)
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cmd, err := s.parseCommand(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.terminal.addItem(c, cmd.customer(), cmd.Product)
		s.respond(c, w, errorWriter, err)
	}
}

func (s *webService) setQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cmd, err := s.parseCommand(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		// the index is read from the form at event time, never from an earlier render
		err = s.terminal.setQuantity(c, cmd.customer(), cmd.Index, cmd.Quantities)
		s.respond(c, w, errorWriter, err)
	}
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cmd, err := s.parseCommand(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.terminal.removeItem(c, cmd.customer(), cmd.Remove)
		s.respond(c, w, errorWriter, err)
	}
}

func (s *webService) submitPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cmd, err := s.parseCommand(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		err = s.terminal.submit(c, cmd.customer(), cmd.Quantities)
		if err != nil {
			s.respond(c, w, errorWriter, err)
			return
		}

		// reloading the page starts the next sale
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// respond re-renders the page. User facing notices are shown on the page, other errors are written as error response.
func (s *webService) respond(c context.Context, w http.ResponseWriter, errorWriter myhttp.ResponseWriter, err error) {
	var notice *cart.Notice
	if err != nil && !errors.As(err, &notice) {
		errorWriter.WriteError(c, w, 2, err)
		return
	}

	if notice != nil {
		s.logger.Log(c, "", mylog.SeverityInfo, "Notice %s: %s", notice.Code, notice.Message)
	}

	s.writePage(c, w, errorWriter, notice)
}

func (s *webService) writePage(c context.Context, w http.ResponseWriter, errorWriter myhttp.ResponseWriter, notice *cart.Notice) {
	pageInfo, err := s.terminal.page(notice)
	if err != nil {
		errorWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = terminalPageTemplate.Execute(w, pageInfo)
	if err != nil {
		errorWriter.WriteError(c, w, 4, myerrors.NewInternalError(err))
		return
	}
}

func (s *webService) parseCommand(r *http.Request) (commandForm, error) {
	err := r.ParseForm()
	if err != nil {
		return commandForm{}, myerrors.NewInvalidInputError(err)
	}

	cmd := commandForm{}
	err = s.formDecoder.Decode(&cmd, r.PostForm)
	if err != nil {
		return commandForm{}, myerrors.NewInvalidInputError(fmt.Errorf("error decoding terminal form: %s", err))
	}

	return cmd, nil
}
