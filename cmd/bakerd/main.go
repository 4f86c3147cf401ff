// Command bakerd starts the Baker daemon: the HTTP + WebSocket API the
// desktop UI talks to for scanning project folders and batch-updating their
// breadcrumbs files.
// Usage: go run ./cmd/bakerd [-config path] [-listen addr] [-storage dir]
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

	"github.com/bakerapp/baker/internal/app"
	"github.com/bakerapp/baker/internal/cli"
	"github.com/bakerapp/baker/internal/logging"
	"github.com/bakerapp/baker/internal/server"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	cfg, err := app.LoadConfig(args.ConfigPath)
	if err != nil {
		log.Fatalf("Loading config: %v", err)
	}
	if args.ListenAddr != "" {
		cfg.ListenAddr = args.ListenAddr
	}
	if args.StorageRoot != "" {
		cfg.StorageRoot = args.StorageRoot
	}

	logger := logging.NewStdoutLogger("bakerd")

	srv, err := server.NewServer(server.Config{
		ListenAddr: cfg.ListenAddr,
		AppConfig:  cfg,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Starting server: %v", err)
	}
	defer srv.Close()

	httpServer := srv.HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", logging.Field{Key: "addr", Value: cfg.ListenAddr})
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
}
