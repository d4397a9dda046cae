package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter"
	"github.com/niksmo/catalog/internal/adapter/httphandler"
	"github.com/niksmo/catalog/internal/adapter/kafka"
	"github.com/niksmo/catalog/internal/adapter/memory"
	"github.com/niksmo/catalog/internal/adapter/mongodb"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/internal/core/service"
	"github.com/niksmo/catalog/pkg/retry"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

const connectBackoff = 200 * time.Millisecond

type outbound struct {
	catalogDB      *mongodb.CatalogDB
	storage        port.ProductsStorage
	eventsProducer *kafka.ProductEventsProducer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	outbound   outbound
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initEventsProducer()
	app.initCoreService()
	app.seedCatalog()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"
	dbCfg := app.cfg.Database

	if dbCfg.ConnectionString == config.MemoryConnectionString {
		slog.Warn("using in-memory products storage", "op", op)
		app.outbound.storage = memory.NewProductsStorage()
		return
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: dbCfg.ConnectAttempts,
		Backoff:     retry.ExponentialBackoff(connectBackoff),
	}

	catalogDB, err := retry.DoWithResult(app.ctx, retryCfg,
		func() (mongodb.CatalogDB, error) {
			db, err := mongodb.NewCatalogDB(app.ctx, mongodb.Options{
				URI:            dbCfg.ConnectionString,
				Database:       dbCfg.DatabaseName,
				Collection:     dbCfg.CollectionName,
				ConnectTimeout: dbCfg.ConnectTimeout,
			})
			if err != nil {
				slog.Warn("database connection attempt failed", "op", op, "err", err)
			}
			return db, err
		},
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.outbound.catalogDB = &catalogDB
	app.outbound.storage = mongodb.NewProductsRepository(catalogDB.Products())
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	if !app.cfg.EventsEnabled() {
		slog.Info("product events are disabled", "op", op)
		return
	}

	brokerCfg := app.cfg.Broker
	topic := brokerCfg.Topics.ProductEvents

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	serde, err := schema.NewSerdeProductEventV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaIdentifier(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	var tlsConfig *tls.Config
	if app.cfg.TLSEnabled() {
		tlsConfig, err = adapter.MakeTLSConfig(
			brokerCfg.TLS.CA, brokerCfg.TLS.Cert, brokerCfg.TLS.Key,
		)
		if err != nil {
			app.fallDown(op, err)
		}
	}

	producer, err := kafka.NewProductEventsProducer(
		kafka.ProducerClientOpt(app.ctx, brokerCfg.SeedBrokers, topic, tlsConfig),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.outbound.eventsProducer = &producer
}

func (app *App) initCoreService() {
	var events port.ProductEventsProducer
	if app.outbound.eventsProducer != nil {
		events = app.outbound.eventsProducer
	}
	app.service = service.New(app.outbound.storage, events)
}

func (app *App) seedCatalog() {
	const op = "App.seedCatalog"

	if !app.cfg.Database.Seed {
		return
	}

	if _, err := app.service.SeedIfEmpty(app.ctx, domain.SeedProducts()); err != nil {
		app.fallDown(op, err)
	}
}

func (app *App) initInboundAdapters() {
	handler := httphandler.NewRouter(app.service)
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr, handler, app.cfg.RequestTimeout,
	)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)

	if app.outbound.eventsProducer != nil {
		app.outbound.eventsProducer.Close()
	}

	if app.outbound.catalogDB != nil {
		app.outbound.catalogDB.Close(ctx)
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
