package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"

	"github.com/MarcGrol/salesbackend/lib/myconfig"
	"github.com/MarcGrol/salesbackend/lib/myevents"
	"github.com/MarcGrol/salesbackend/lib/myhttp"
	"github.com/MarcGrol/salesbackend/lib/myhttpclient"
	"github.com/MarcGrol/salesbackend/lib/mylog"
	"github.com/MarcGrol/salesbackend/lib/mypublisher"
	"github.com/MarcGrol/salesbackend/lib/mypubsub"
	"github.com/MarcGrol/salesbackend/lib/myqueue"
	"github.com/MarcGrol/salesbackend/lib/mystore"
	"github.com/MarcGrol/salesbackend/lib/mytime"
	"github.com/MarcGrol/salesbackend/lib/myuuid"
	"github.com/MarcGrol/salesbackend/services/invoice"
	"github.com/MarcGrol/salesbackend/services/pos"
	"github.com/MarcGrol/salesbackend/services/sale"
	"github.com/MarcGrol/salesbackend/services/warmup"
)

var logger = mylog.New("main")

func main() {
	app := &cli.App{
		Name:  "salesbackend",
		Usage: "point-of-sale terminal, backoffice and invoicing",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the webserver",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Usage:   "port to listen on",
						EnvVars: []string{"PORT"},
						Value:   "8080",
					},
					&cli.StringFlag{
						Name:  "seed",
						Usage: "csv-file with products (nombre;precio;stock) to import at startup",
					},
				},
				Action: serve,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		logger.Log(context.Background(), "", mylog.SeverityError, "%s", err)
		os.Exit(1)
	}
}

func serve(ctx *cli.Context) error {
	c := ctx.Context

	// Config and hostname guessing both read PORT
	err := os.Setenv("PORT", ctx.String("port"))
	if err != nil {
		return err
	}

	cfg, err := myconfig.Load()
	if err != nil {
		return err
	}
	if cfg.RunsInCloud() {
		mylog.UseStructured()
		logger = mylog.New("main")
	}

	router := mux.NewRouter()

	pubsub, cleanup, err := mypubsub.New(c, cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("error creating pubsub: %s", err)
	}
	defer cleanup()

	publisher, cleanup, err := createPublisher(c, cfg, pubsub, router)
	if err != nil {
		return err
	}
	defer cleanup()

	stores, cleanup, err := createSaleStores(c, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	saleService := sale.NewWebService(stores, mytime.RealNower{}, myuuid.RealUUIDer{}, publisher)
	err = saleService.RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering sale endpoints: %s", err)
	}

	if seedFile := ctx.String("seed"); seedFile != "" {
		err = seedProducts(c, saleService, seedFile)
		if err != nil {
			return err
		}
	}

	warmup.NewService(saleService).RegisterEndpoints(c, router)

	posService := pos.NewWebService(saleService, myhttpclient.New(0), cfg.SaleBackendURL)
	err = posService.RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering pos endpoints: %s", err)
	}

	invoiceStore, cleanup, err := mystore.New[invoice.Invoice](c, cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("error creating invoice store: %s", err)
	}
	defer cleanup()

	invoiceService := invoice.NewWebService(invoiceStore, pubsub, invoice.NewMailer(cfg.SMTP), mytime.RealNower{}, cfg.Company)
	err = invoiceService.RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering invoice endpoints: %s", err)
	}

	return startWebServerBlocking(c, cfg.Port, router)
}

func createPublisher(c context.Context, cfg myconfig.Config, pubsub mypubsub.PubSub, router *mux.Router) (mypublisher.Publisher, func(), error) {
	outbox, outboxCleanup, err := mystore.New[myevents.EventEnvelope](c, cfg.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating outbox store: %s", err)
	}

	queue, queueCleanup, err := myqueue.New(c, myqueue.Config{
		ProjectID:    cfg.ProjectID,
		LocationID:   cfg.LocationID,
		QueueName:    cfg.QueueName,
		Delay:        time.Second,
		LocalBaseURL: myhttp.GuessHostnameWithScheme(),
	})
	if err != nil {
		outboxCleanup()
		return nil, nil, fmt.Errorf("error creating queue: %s", err)
	}

	publisher := mypublisher.New(outbox, pubsub, queue, mytime.RealNower{})
	publisher.RegisterEndpoints(c, router)

	return publisher, func() {
		queueCleanup()
		outboxCleanup()
	}, nil
}

func createSaleStores(c context.Context, cfg myconfig.Config) (sale.Stores, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for _, f := range cleanups {
			f()
		}
	}

	products, productCleanup, err := mystore.New[sale.Product](c, cfg.ProjectID)
	if err != nil {
		return sale.Stores{}, nil, fmt.Errorf("error creating product store: %s", err)
	}
	cleanups = append(cleanups, productCleanup)

	customers, customerCleanup, err := mystore.New[sale.Customer](c, cfg.ProjectID)
	if err != nil {
		cleanup()
		return sale.Stores{}, nil, fmt.Errorf("error creating customer store: %s", err)
	}
	cleanups = append(cleanups, customerCleanup)

	sales, saleCleanup, err := mystore.New[sale.Sale](c, cfg.ProjectID)
	if err != nil {
		cleanup()
		return sale.Stores{}, nil, fmt.Errorf("error creating sale store: %s", err)
	}
	cleanups = append(cleanups, saleCleanup)

	sequences, sequenceCleanup, err := mystore.New[sale.Sequence](c, cfg.ProjectID)
	if err != nil {
		cleanup()
		return sale.Stores{}, nil, fmt.Errorf("error creating sequence store: %s", err)
	}
	cleanups = append(cleanups, sequenceCleanup)

	return sale.Stores{
		Products:  products,
		Customers: customers,
		Sales:     sales,
		Sequences: sequences,
	}, cleanup, nil
}

type productImporter interface {
	ImportProducts(c context.Context, forms []sale.ProductForm) (int, error)
}

func seedProducts(c context.Context, importer productImporter, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error opening seed file %s: %s", filename, err)
	}
	defer f.Close()

	forms, err := sale.ReadProductForms(f)
	if err != nil {
		return fmt.Errorf("error reading seed file %s: %s", filename, err)
	}

	count, err := importer.ImportProducts(c, forms)
	if err != nil {
		return fmt.Errorf("error importing products from %s: %s", filename, err)
	}
	logger.Log(c, "", mylog.SeverityInfo, "Imported %d products from %s", count, filename)

	return nil
}

func startWebServerBlocking(c context.Context, port string, router *mux.Router) error {
	logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		return fmt.Errorf("error starting webserver on port %s: %s", port, err)
	}
	return nil
}
