package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/sanjibtex/storefront/config"
	"github.com/sanjibtex/storefront/internal/adapter/httphandler"
	"github.com/sanjibtex/storefront/internal/adapter/kafka"
	"github.com/sanjibtex/storefront/internal/adapter/storage"
	"github.com/sanjibtex/storefront/internal/core/analytics"
	"github.com/sanjibtex/storefront/internal/core/service"
	"github.com/sanjibtex/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	productView schema.Serde
	siteVisit   schema.Serde
}

type repositories struct {
	products   storage.ProductsRepository
	categories storage.CategoriesRepository
	wishlists  storage.WishlistsRepository
	settings   storage.SettingsRepository
	events     storage.EventsRepository
}

type App struct {
	ctx   context.Context
	cfg   config.Config
	wg    sync.WaitGroup
	sqldb storage.SQLDB

	serdes serdes
	repos  repositories

	service         service.Service
	aggregator      *analytics.Aggregator
	eventsProducer  kafka.EventsProducer
	eventsConsumer  kafka.EventsConsumer
	viewCounterProc *kafka.ViewCounterProcessor
	viewCounterView *kafka.ViewCounterView
	httpServer      httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSerdes()
	app.initEventsPipeline()
	app.initCoreService()
	app.initAggregator()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	app.sqldb = sqldb
	app.repos = repositories{
		products:   storage.NewProductsRepository(sqldb),
		categories: storage.NewCategoriesRepository(sqldb),
		wishlists:  storage.NewWishlistsRepository(sqldb),
		settings:   storage.NewSettingsRepository(sqldb),
		events:     storage.NewEventsRepository(sqldb),
	}
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

	viewSS := app.cfg.Broker.Topics.ProductViews + "-value"
	viewSerde, err := schema.NewSerdeProductViewV1(
		ctx,
		schema.SubjectOpt(viewSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	visitSS := app.cfg.Broker.Topics.SiteVisits + "-value"
	visitSerde, err := schema.NewSerdeSiteVisitV1(
		ctx,
		schema.SubjectOpt(visitSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.productView = viewSerde
	app.serdes.siteVisit = visitSerde
}

func (app *App) initEventsPipeline() {
	const op = "App.initEventsPipeline"

	ctx := app.ctx
	broker := app.cfg.Broker

	producerCl, err := kafka.NewProducerClient(ctx, broker.SeedBrokers)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewEventsProducer(
		kafka.TrackerClientOpt(producerCl),
		kafka.TrackerViewsOpt(broker.Topics.ProductViews, app.serdes.productView),
		kafka.TrackerVisitsOpt(broker.Topics.SiteVisits, app.serdes.siteVisit),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.eventsProducer = producer

	consumerCl, err := kafka.NewConsumerClient(
		ctx,
		broker.SeedBrokers,
		broker.Consumers.EventSaverGroup,
		broker.Topics.ProductViews,
		broker.Topics.SiteVisits,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventsConsumer = kafka.NewEventsConsumer(kafka.EventsConsumerConfig{
		Client:      consumerCl,
		Saver:       app.repos.events,
		ViewsTopic:  broker.Topics.ProductViews,
		ViewsDec:    app.serdes.productView,
		VisitsTopic: broker.Topics.SiteVisits,
		VisitsDec:   app.serdes.siteVisit,
	})

	proc, err := kafka.NewViewCounterProc(
		broker.SeedBrokers,
		broker.Topics.ProductViews,
		broker.Consumers.ViewCounterGroup,
		app.serdes.productView,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.viewCounterProc = proc

	view, err := kafka.NewViewCounterView(
		broker.SeedBrokers, broker.Consumers.ViewCounterGroup,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.viewCounterView = view
}

func (app *App) initCoreService() {
	app.service = service.New(
		app.repos.products,
		app.repos.products,
		app.repos.products,
		app.repos.categories,
		app.repos.settings,
		app.repos.settings,
		app.eventsProducer,
	)
}

func (app *App) initAggregator() {
	app.aggregator = analytics.New(
		app.repos.products,
		app.repos.categories,
		app.repos.events,
		app.repos.wishlists,
		app.repos.events,
		analytics.Config{
			WindowDays:      app.cfg.Analytics.WindowDays,
			RefreshInterval: app.cfg.Analytics.RefreshInterval,
		},
	)
}

func (app *App) initHTTPServer() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterStorefront(mux, app.service)
	httphandler.RegisterWishlist(mux, app.repos.wishlists)
	httphandler.RegisterAdmin(mux, app.service, app.aggregator, app.viewCounterView)

	handler := httphandler.WithIdentity(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.eventsConsumer.Run(app.ctx)
	go app.viewCounterView.Run(app.ctx)
	go app.aggregator.Run(app.ctx)

	app.wg.Add(1)
	go app.viewCounterProc.Run(app.ctx, stopFn, &app.wg)

	app.aggregator.Refresh(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.eventsConsumer.Close()
	app.viewCounterProc.Close()
	app.wg.Wait()
	app.eventsProducer.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
