package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/Mokhaled2004/SoupShop/internal/config"
	"github.com/Mokhaled2004/SoupShop/internal/db"
	"github.com/Mokhaled2004/SoupShop/internal/httpserver"
	"github.com/Mokhaled2004/SoupShop/internal/repository/session"
	authsvc "github.com/Mokhaled2004/SoupShop/internal/service/auth"
	cartsvc "github.com/Mokhaled2004/SoupShop/internal/service/cart"
	catalogsvc "github.com/Mokhaled2004/SoupShop/internal/service/catalog"
	ordersvc "github.com/Mokhaled2004/SoupShop/internal/service/order"
	"github.com/Mokhaled2004/SoupShop/internal/upstream"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	store, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("init session store: %v", err)
	}

	client := upstream.New(cfg.UpstreamURL, logger)

	var source catalogsvc.Source = client
	if cfg.CatalogSource == "static" {
		source = catalogsvc.StaticSource{}
	}

	catalogService := catalogsvc.New(source)
	cartService := cartsvc.New(store)
	authService := authsvc.New(store, client)
	orderService := ordersvc.New(client, cartService, authService, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:       store,
		Catalog:     catalogService,
		Carts:       cartService,
		Orders:      orderService,
		Auth:        authService,
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (session store: %s, catalog: %s)",
			cfg.HTTPAddr, cfg.SessionStore, cfg.CatalogSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func buildStore(ctx context.Context, cfg config.Config, logger *log.Logger) (session.Store, error) {
	switch cfg.SessionStore {
	case "redis":
		return session.NewRedis(&redis.Options{Addr: cfg.RedisAddr}, 0), nil
	case "postgres":
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, err
		}
		return session.NewPostgres(pool, logger), nil
	default:
		logger.Printf("using in-memory session store; carts will not survive restarts")
		return session.NewMemory(), nil
	}
}
