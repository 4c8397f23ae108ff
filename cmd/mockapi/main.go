package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mokhaled2004/SoupShop/internal/config"
	"github.com/Mokhaled2004/SoupShop/internal/mockapi"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[mockapi] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	addr := os.Getenv("MOCKAPI_ADDR")
	if addr == "" {
		addr = ":9090"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mockapi.New(logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("mock soup API listening on %s", addr)
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	}
}
