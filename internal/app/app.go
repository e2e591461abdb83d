package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/pkg/sr"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
)

type serdes struct {
	cartEvent   schema.Serde
	cartSummary schema.Serde
}

type App struct {
	ctx         context.Context
	cfg         config.Config
	serdes      serdes
	db          storage.SQLDB
	mutations   kafka.CartMutationsProducer
	summaryView kafka.CartSummaryView
	service     service.Service
	httpServer  httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	eventSubject := app.cfg.Broker.Topics.CartEvents + "-value"
	eventSerde, err := schema.NewSerdeCartEventV1(
		ctx,
		schema.SubjectOpt(eventSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	summarySubject := app.cfg.Broker.Topics.CartSummaryTable + "-value"
	summarySerde, err := schema.NewSerdeCartSummaryV1(
		ctx,
		schema.SubjectOpt(summarySubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.cartEvent = eventSerde
	app.serdes.cartSummary = summarySerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers

	db, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.db = db

	mutations, err := kafka.NewCartMutationsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers),
		kafka.EventStreamOpt(
			app.cfg.Broker.Topics.CartEvents, app.serdes.cartEvent,
		),
		kafka.SummaryTableOpt(
			app.cfg.Broker.Topics.CartSummaryTable, app.serdes.cartSummary,
		),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.mutations = mutations

	summaryView, err := kafka.NewCartSummaryView(kafka.CartSummaryViewConfig{
		SeedBrokers: seedBrokers,
		Topic:       app.cfg.Broker.Topics.CartSummaryTable,
		Serde:       app.serdes.cartSummary,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.summaryView = summaryView
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	shippingFee, err := decimal.NewFromString(app.cfg.ShippingFee)
	if err != nil {
		app.fallDown(op, err)
	}

	app.service = service.New(
		storage.NewProductsRepository(app.db),
		storage.NewCartRepository(app.db),
		app.mutations,
		app.summaryView,
		shippingFee,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.service)
	httphandler.RegisterCarts(mux, app.service)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.summaryView.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.mutations.Close()
	app.db.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
