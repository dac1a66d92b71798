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

	"github.com/joho/godotenv"

	"github.com/nimbleshop/assistant/internal/backend"
	"github.com/nimbleshop/assistant/internal/config"
	"github.com/nimbleshop/assistant/internal/handler"
	"github.com/nimbleshop/assistant/internal/service/agent"
	"github.com/nimbleshop/assistant/internal/service/assistant"
	"github.com/nimbleshop/assistant/internal/session"
	"github.com/nimbleshop/assistant/internal/tools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := session.NewStore(cfg.Session.Timeout)
	backendClient := backend.NewClient(cfg.Backend)
	toolset := tools.New(backendClient)

	asst := assistant.New(store, func(ctx context.Context) (assistant.Invoker, error) {
		return agent.NewService(ctx, cfg.AI, toolset)
	})

	if cfg.AI.Enabled() {
		if err := asst.Initialize(ctx); err != nil {
			log.Printf("warning: failed to initialize shopping assistant: %v", err)
			log.Println("continuing in degraded mode - chat requests will receive an apology response")
		} else {
			log.Println("shopping assistant initialized successfully")
		}
	} else {
		log.Println("model credentials not configured, skipping assistant initialization")
	}

	// Background expiry sweep, stopped with the process.
	go store.RunSweeper(ctx, cfg.Session.SweepInterval)

	router := handler.NewRouter(asst, store, backendClient)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("shopping assistant backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
