// @title        Store Manager API
// @version      1.0
// @description  Inventory and sales backend with admin and attendant roles.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/storemanager/store-api/internal/api"
	"github.com/storemanager/store-api/internal/core/ports"
	"github.com/storemanager/store-api/internal/core/service"
	"github.com/storemanager/store-api/internal/infrastructure/config"
	"github.com/storemanager/store-api/internal/infrastructure/db/memory"
	mongostore "github.com/storemanager/store-api/internal/infrastructure/db/mongo"
	redisstore "github.com/storemanager/store-api/internal/infrastructure/db/redis"
	"github.com/storemanager/store-api/internal/infrastructure/http/handlers"
	"github.com/storemanager/store-api/internal/infrastructure/queue"
	"github.com/storemanager/store-api/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "store-api",
	})

	st, cleanup, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	serializer := queue.NewSerializer(cfg.SerializerWorkers, logger.Component("serializer"))
	// Workers outlive the signal so in-flight sales can finish during shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	serializer.Start(workerCtx)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, st.revocations, logger.Component("tokens"))
	e, err := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(st.users, tokens, logger.Component("auth")),
		Tokens:   tokens,
		Products: service.NewProductService(st.products, logger.Component("products")),
		Sales:    service.NewSaleService(st.sales, st.products, serializer, logger.Component("sales")),
		Checks:   st.checks,
		Logger:   logger.Component("http"),
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("store", cfg.StoreDriver).Str("revocation", cfg.RevocationDriver).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("gracefully shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type stores struct {
	users       ports.UserRepository
	products    ports.ProductRepository
	sales       ports.SaleRepository
	revocations ports.RevocationStore
	checks      map[string]handlers.Check
}

// openStores builds the repositories selected by STORE_DRIVER and
// REVOCATION_DRIVER. cleanup closes whatever connections were opened.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, func(), error) {
	st := &stores{checks: map[string]handlers.Check{}}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		})
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			cleanup()
			return nil, nil, err
		}
		st.users = mongostore.NewUserRepository(db)
		st.products = mongostore.NewProductRepository(db)
		st.sales = mongostore.NewSaleRepository(db)
		st.checks["mongodb"] = handlers.MongoCheck(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	default:
		st.users = memory.NewUserRepository()
		st.products = memory.NewProductRepository()
		st.sales = memory.NewSaleRepository()
	}

	switch cfg.RevocationDriver {
	case config.DriverRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		st.revocations = redisstore.NewRevocationStore(rdb)
		st.checks["redis"] = handlers.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	default:
		st.revocations = memory.NewRevocationStore()
	}

	return st, cleanup, nil
}
