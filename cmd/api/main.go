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

	"github.com/seo-optimizer/backend/internal/config"
	"github.com/seo-optimizer/backend/internal/handler"
	"github.com/seo-optimizer/backend/internal/seo"
	"github.com/seo-optimizer/backend/internal/service/agent"
	"github.com/seo-optimizer/backend/internal/service/chat"
	"github.com/seo-optimizer/backend/internal/store"
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

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	userStore := store.NewUserStore(db)
	conversationStore := store.NewConversationStore(db)
	messageStore := store.NewMessageStore(db)

	fetcher := seo.NewFetcher(time.Duration(cfg.Fetcher.TimeoutSeconds) * time.Second)
	seoTool, err := seo.NewTool(fetcher)
	if err != nil {
		log.Fatalf("failed to build fetchPage tool: %v", err)
	}

	if !cfg.AI.Enabled() {
		log.Println("warning: GROQ_API_KEY not set, analysis requests will return the fallback message")
	}
	agentSvc, err := agent.NewService(ctx, cfg.AI, seoTool)
	if err != nil {
		log.Fatalf("failed to initialize agent service: %v", err)
	}

	chatSvc := chat.NewService(userStore, conversationStore, messageStore, agentSvc)

	if cfg.Auth.JWTSecret == "" {
		log.Println("warning: AUTH_JWT_SECRET not set, bearer tokens are accepted unverified")
	}

	router := handler.NewRouter(chatSvc, cfg.Auth.JWTSecret)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("SEO Optimizer backend listening on %s", serverCfg.Addr)
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
