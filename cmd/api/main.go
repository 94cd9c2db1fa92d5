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

	"github.com/puresoul/puresoul/backend/internal/config"
	"github.com/puresoul/puresoul/backend/internal/handler"
	"github.com/puresoul/puresoul/backend/internal/model/category"
	"github.com/puresoul/puresoul/backend/internal/service/ai"
	"github.com/puresoul/puresoul/backend/internal/service/credit"
	"github.com/puresoul/puresoul/backend/internal/service/history"
	"github.com/puresoul/puresoul/backend/internal/service/reply"
	sessionservice "github.com/puresoul/puresoul/backend/internal/service/session"
	"github.com/puresoul/puresoul/backend/internal/service/speech"
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

	categories := category.NewMemoryStore(category.Seed())
	store := history.NewStore()

	// Credit ledger: remote when configured, otherwise in-process.
	var ledger credit.Ledger
	if cfg.Credit.BaseURL != "" {
		ledger = credit.NewHTTPLedger(cfg.Credit.BaseURL, cfg.Credit.Token, cfg.Credit.Timeout)
		log.Printf("credit ledger: remote at %s", cfg.Credit.BaseURL)
	} else {
		ledger = credit.NewMemoryLedger(cfg.Credit.FreeAllowance)
		log.Printf("credit ledger: in-process, free allowance %d", cfg.Credit.FreeAllowance)
	}

	// Reply generation: local model first, remote backend second,
	// fixed fallback replies last.
	var replier reply.Replier
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
		} else {
			replier = aiService
			log.Println("AI reply service initialized successfully")
		}
	}
	if replier == nil && cfg.Reply.BaseURL != "" {
		replier = reply.NewHTTPClient(cfg.Reply.BaseURL, cfg.Reply.Token, 30*time.Second)
		log.Printf("reply backend: remote at %s", cfg.Reply.BaseURL)
	}
	if replier == nil {
		log.Println("no reply backend configured, sessions will use the fallback reply")
	}

	// Speech synthesis is optional; playback stays silent without it.
	var synth sessionservice.Synthesizer
	if cfg.Speech.Enabled {
		synth = speech.NewService(cfg.Speech.BaseURL, cfg.Speech.Token, cfg.Speech.Voice, cfg.Speech.Timeout)
		log.Println("speech synthesis service initialized successfully")
	} else {
		log.Println("speech synthesis not configured, skipping playback audio")
	}

	sessions := sessionservice.NewService(categories, ledger, replier, synth, store)

	router := handler.NewRouter(categories, sessions, ledger, store, cfg.Credit.FreeAllowance)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Puresoul backend listening on %s", serverCfg.Addr)
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
