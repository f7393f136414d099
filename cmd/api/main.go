package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/njprem/TravelWisata_BackEnd/internal/catalog"
	"github.com/njprem/TravelWisata_BackEnd/internal/config"
	"github.com/njprem/TravelWisata_BackEnd/internal/events"
	"github.com/njprem/TravelWisata_BackEnd/internal/localstore"
	"github.com/njprem/TravelWisata_BackEnd/internal/logging"
	"github.com/njprem/TravelWisata_BackEnd/internal/media"
	"github.com/njprem/TravelWisata_BackEnd/internal/repository/memory"
	minioRepo "github.com/njprem/TravelWisata_BackEnd/internal/repository/minio"
	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
	pgRepo "github.com/njprem/TravelWisata_BackEnd/internal/repository/postgres"
	redisRepo "github.com/njprem/TravelWisata_BackEnd/internal/repository/redis"
	sqliteRepo "github.com/njprem/TravelWisata_BackEnd/internal/repository/sqlite"
	"github.com/njprem/TravelWisata_BackEnd/internal/service"
	httpx "github.com/njprem/TravelWisata_BackEnd/internal/transport/http"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	var hooks []logrus.Hook
	var logstash *logging.LogstashHook
	if cfg.LogstashTCPAddr != "" {
		hook, err := logging.NewLogstashHook(cfg.LogstashTCPAddr)
		if err != nil {
			logrus.WithError(err).Fatal("logstash hook")
		}
		logstash = hook
		hooks = append(hooks, hook)
	}
	logger := logging.New(cfg.LogLevel, os.Stdout, hooks...)

	ctx := context.Background()
	kv, closeKV, err := openKeyValueStore(ctx, cfg)
	if err != nil {
		logger.WithError(err).WithField("driver", cfg.StorageDriver).Fatal("open storage")
	}

	var publisher ports.EventPublisher = events.Noop{}
	var nats *events.NATSPublisher
	if cfg.NATSURL != "" {
		nats, err = events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			logger.WithError(err).Fatal("connect nats")
		}
		publisher = nats
	}

	// Left as a nil interface when MinIO is not configured so uploads report disabled.
	var storage ports.ObjectStorage
	if cfg.UploadsEnabled() {
		client, err := minioRepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			logger.WithError(err).Fatal("minio client")
		}
		objects := minioRepo.NewStorage(client, cfg.MinIOPublicURL)
		if err := objects.EnsureBucket(ctx, cfg.MinIOBucketDestinations); err != nil {
			logger.WithError(err).Fatal("ensure destinations bucket")
		}
		storage = objects
	}

	cat := catalog.MustDefault()
	ids := util.NewTimestampIDs(nil)
	stores := service.NewStores(localstore.New(kv, logger), service.StoreOptions{
		Catalog:     cat,
		Events:      publisher,
		Logger:      logger,
		IDs:         ids,
		AdminEmails: cfg.AdminEmails,
	})
	clients := service.NewClientService(util.NewJWTManager(cfg.ClientTokenSecret, cfg.ClientTokenTTL))
	destinations := service.NewDestinationService(cat)
	weather := service.NewWeatherService(cfg.WeatherMockDelay, 0)
	editors := service.NewAdminEditors(cat, ids)
	images := service.NewImageService(storage, media.NewValidator(cfg.DestinationImageMaxBytes, 0), service.ImageServiceConfig{
		Bucket:   cfg.MinIOBucketDestinations,
		MaxBytes: cfg.DestinationImageMaxBytes,
	})

	e := httpx.NewRouter(cfg.AllowOrigins, logger)
	httpx.RegisterSwagger(e)
	httpx.RegisterClients(e, clients)
	httpx.RegisterAuth(e, clients, stores)
	httpx.RegisterDestinations(e, destinations, weather)
	httpx.RegisterWishlist(e, clients, stores)
	httpx.RegisterReviews(e, clients, stores)
	httpx.RegisterPreferences(e, clients, stores)
	httpx.RegisterAdmin(e, clients, stores, editors, images)

	go func() {
		logger.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"storage": cfg.StorageDriver,
			"uploads": images.Enabled(),
		}).Info("starting travelwisata api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown")
	}
	if nats != nil {
		if err := nats.Close(); err != nil {
			logger.WithError(err).Warn("drain nats")
		}
	}
	if err := closeKV(); err != nil {
		logger.WithError(err).Warn("close storage")
	}
	if logstash != nil {
		_ = logstash.Close()
	}
}

// openKeyValueStore builds the backend selected by STORAGE_DRIVER and returns
// a closer for its underlying connection.
func openKeyValueStore(ctx context.Context, cfg config.Config) (ports.KeyValueStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := pgRepo.New(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		repo := pgRepo.NewKeyValueRepo(db)
		if err := repo.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return repo, db.Close, nil
	case config.StorageSQLite:
		db, err := sqliteRepo.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return sqliteRepo.NewKeyValueRepo(db), db.Close, nil
	case config.StorageRedis:
		client, err := redisRepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return redisRepo.NewKeyValueStore(client, cfg.RedisKeyPrefix), client.Close, nil
	default:
		return memory.NewKeyValueStore(), noop, nil
	}
}
