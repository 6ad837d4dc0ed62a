// Package server wires the eventkeeper server together: configuration,
// logging, PostgreSQL, photo storage (S3 with an in-memory fallback served
// over HTTP) and the gRPC API, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/eventkeeper/internal/blobstore"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/photos"
	"github.com/dmitrijs2005/eventkeeper/internal/server/config"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/eventkeeper/internal/server/services"

	gs "github.com/dmitrijs2005/eventkeeper/internal/server/grpc"
)

// openDB is replaced in tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	photoStore   blobstore.Store
	localStore   *blobstore.MemoryStore
	eventService *services.EventService
	guestService *services.GuestService
	registry     *photos.Registry
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{
		config:       c,
		logger:       logger,
		db:           db,
		repomanager:  rm,
		localStore:   blobstore.NewMemoryStore(c.BlobBaseURL),
		eventService: services.NewEventService(db, rm, c),
		guestService: services.NewGuestService(db, rm, logger),
	}

	if c.S3Bucket != "" {
		s3, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
			Region:        c.S3Region,
			AccessKey:     c.S3RootUser,
			SecretKey:     c.S3RootPassword,
			Bucket:        c.S3Bucket,
			Endpoint:      c.S3BaseEndpoint,
			PublicBaseURL: c.S3PublicBaseURL,
		})
		if err != nil {
			logger.Warn(ctx, "object storage unavailable, photos will be kept in memory", "err", err)
		} else {
			app.photoStore = s3
		}
	}

	meta := services.NewPhotoMetadataService(db, rm)
	app.registry = photos.NewRegistry(func(eventID string) *photos.Manager {
		return photos.NewManager(eventID, app.photoStore, meta, app.localStore,
			photos.WithLogger(logger),
			photos.WithTimeout(c.RequestTimeout),
		)
	})

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.eventService, app.guestService,
		app.registry, app.config.SecretKey, app.config.RequestTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startBlobServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := blobstore.NewBlobServer(app.config.EndpointAddrHTTP, app.localStore, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "remote_photos", app.photoStore != nil)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startBlobServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "err", err)
	}
	app.logger.Info(ctx, "App stopped")
}
