package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/storerate/rating-api/internal/api"
	"github.com/storerate/rating-api/internal/core/service"
	"github.com/storerate/rating-api/internal/infrastructure/config"
	mongodb "github.com/storerate/rating-api/internal/infrastructure/db/mongo"
	redisdb "github.com/storerate/rating-api/internal/infrastructure/db/redis"
	opshttp "github.com/storerate/rating-api/internal/infrastructure/http"
	"github.com/storerate/rating-api/internal/infrastructure/http/handlers"
	"github.com/storerate/rating-api/internal/infrastructure/token"
	"github.com/storerate/rating-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "ratingd"})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Service: "ratingd",
	})
	log.Info().Str("env", cfg.Env).Msg("starting ratingd")

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("ratingd stopped with error")
	}
	log.Info().Msg("ratingd stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoCfg, redisCfg := storageConfigs(cfg)

	client, db, err := mongodb.Connect(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	if err := mongodb.Migrate(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db, cfg.Mongo.Timeout)
	stores := mongodb.NewStoreRepository(db, cfg.Mongo.Timeout)
	ratings := mongodb.NewRatingRepository(db, cfg.Mongo.Timeout)

	authority := token.NewAuthority(cfg.JWTSecret, cfg.TokenTTL)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	apiServer := api.NewRouter(api.Deps{
		Verifier:       authority,
		Auth:           service.NewAuthService(users, authority, limiter, cfg.BcryptCost, logger.Component("auth")),
		Ratings:        service.NewRatingService(ratings, stores, logger.Component("ratings")),
		Stores:         service.NewStoreService(stores, users, logger.Component("stores")),
		Dashboard:      service.NewDashboardService(users, stores, ratings),
		Logger:         logger.Component("http"),
		RequestTimeout: cfg.RequestTimeout,
	})
	opsServer := opshttp.NewOpsRouter(map[string]handlers.Check{
		"mongodb": handlers.MongoCheck(db),
		"redis":   handlers.RedisCheck(rdb),
	}, prometheus.DefaultGatherer)

	errCh := make(chan error, 2)
	serve := func(name string, e *echo.Echo, port string) {
		log.Info().Str("listener", name).Str("port", port).Msg("listening")
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}
	go serve("api", apiServer, cfg.Port)
	go serve("ops", opsServer, cfg.OpsPort)

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return err
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("api shutdown")
	}
	if err := opsServer.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("ops shutdown")
	}
	return nil
}

func storageConfigs(cfg *config.Config) (mongodb.Config, redisdb.Config) {
	m := mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	}
	r := redisdb.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Timeout:  cfg.Redis.Timeout,
		PoolSize: cfg.Redis.PoolSize,
	}
	return m, r
}
