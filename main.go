package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamhaven/domain/repository"
	"streamhaven/infrastructure/cache"
	"streamhaven/infrastructure/configuration"
	"streamhaven/infrastructure/logger"
	"streamhaven/infrastructure/persistence"
	"streamhaven/infrastructure/pubsub"
	"streamhaven/infrastructure/servicebus"
	"streamhaven/infrastructure/signer"
	httpHandler "streamhaven/interfaces/http"
	"streamhaven/server"
	"streamhaven/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	loaded := configuration.LoadEnvFromFile("config.env", ".env")
	logger.GetLogger().WithField("files", loaded).Info("Env files loaded")

	app := configuration.C.App

	db, vendor, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Database initialization failed")
		os.Exit(1)
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"vendor": vendor,
		"ping":   db.Ping(),
	}).Info("Database connected.")

	// watch_progress is the only state this service owns; make sure its
	// unique constraint exists before the first upsert.
	if vendor == "mssql" {
		err = persistence.EnsurePlaybackSchemaMSSQL(db)
	} else {
		err = persistence.EnsurePlaybackSchema(db)
	}
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed ensuring watch progress schema")
		os.Exit(1)
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - listing annotations will hit the subscription store directly")
		redisClient = nil
	} else {
		logger.GetLogger().Info("Redis client initialized successfully.")
	}
	stateCache := cache.NewSubscriptionStateCache(redisClient)

	// Event brokers are optional; a missing broker just means no playback
	// analytics feed from this deployment.
	var playbackPubSub pubsub.IPlaybackPubSub
	if configuration.C.Pubsub.ProjectID != "" {
		pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("PubSub not available - continuing without event publishing")
		} else {
			playbackPubSub = pubsub.NewPlaybackPubSub(pubSubClient)
		}
	}
	var playbackServiceBus servicebus.IPlaybackServiceBus
	if configuration.C.ServiceBus.ConnectionString != "" {
		azServiceBusClient, err := servicebus.NewServiceBus(configuration.C.ServiceBus.ConnectionString)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Azure Service Bus not available - continuing without event publishing")
		} else {
			playbackServiceBus = servicebus.NewPlaybackServiceBus(azServiceBusClient)
		}
	}
	playbackEvents := usecase.NewPlaybackEvents(playbackPubSub, playbackServiceBus)

	var (
		viewerRepository       repository.IViewer
		catalogRepository      repository.ICatalog
		subscriptionRepository repository.ISubscription
		progressRepository     repository.IWatchProgress
	)
	if vendor == "mssql" {
		viewerRepository = persistence.NewViewerRepositoryMSSQL(db)
		catalogRepository = persistence.NewCatalogRepositoryMSSQL(db)
		subscriptionRepository = persistence.NewSubscriptionRepositoryMSSQL(db)
		progressRepository = persistence.NewWatchProgressRepositoryMSSQL(db)
	} else {
		viewerRepository = persistence.NewViewerRepository(db)
		catalogRepository = persistence.NewCatalogRepository(db)
		subscriptionRepository = persistence.NewSubscriptionRepository(db)
		progressRepository = persistence.NewWatchProgressRepository(db)
	}

	urlSigner := signer.NewURLSigner(
		configuration.C.Playback.SigningSecret,
		configuration.C.Playback.StreamBaseURL,
		configuration.C.Playback.GrantTTLSeconds,
	)

	subscriptionState := usecase.NewSubscriptionState(subscriptionRepository)
	playbackUsecase := usecase.NewPlaybackUsecase(catalogRepository, subscriptionState, urlSigner, playbackEvents)
	progressUsecase := usecase.NewWatchProgressUsecase(progressRepository, playbackEvents)
	listingUsecase := usecase.NewListingUsecase(catalogRepository, subscriptionState, stateCache)

	playbackHandler := httpHandler.NewPlaybackHandler(playbackUsecase)
	progressHandler := httpHandler.NewProgressHandler(progressUsecase)
	listingHandler := httpHandler.NewListingHandler(listingUsecase)
	streamHandler := httpHandler.NewStreamHandler(urlSigner, configuration.C.Playback.AssetOriginURL)

	router := server.InitiateRouter(playbackHandler, progressHandler, listingHandler, streamHandler, viewerRepository)

	logger.GetLogger().WithFields(map[string]interface{}{"port": app.Port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", app.Port),
			Handler: router,
		}
		if app.TLSEnabled && app.TLSCertFile != "" && app.TLSKeyFile != "" {
			if err := httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
		if app.TLSEnabled {
			logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateDatabase returns the storefront database and which vendor it is.
// Production runs Azure SQL; local and dev run PostgreSQL. DB_VENDOR=mssql
// forces the SQL Server path for local testing against docker-compose.
func InitiateDatabase() (*sql.DB, string, error) {
	if os.Getenv("DB_VENDOR") == "mssql" || os.Getenv("ENV") == "production" || os.Getenv("ENV") == "prod" {
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot connect to MSSQL")
			return nil, "", err
		}
		return db, "mssql", nil
	}

	db, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to the local database")
		return nil, "", err
	}
	return db, "postgres", nil
}
