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

	"github.com/evateli/globetalk/internal/config"
	"github.com/evateli/globetalk/internal/handler"
	"github.com/evateli/globetalk/internal/service/ai"
	"github.com/evateli/globetalk/internal/service/avatar"
	chatservice "github.com/evateli/globetalk/internal/service/chat"
	countryservice "github.com/evateli/globetalk/internal/service/country"
	"github.com/evateli/globetalk/internal/service/weather"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	chatSvc := chatservice.NewService(cfg.Store.SessionTTL, cfg.Store.SessionReapInterval)
	defer chatSvc.Close()

	var aiSvc *ai.Service
	var avatars *avatar.Client
	var countrySvc *countryservice.Service
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the OPENAI_* environment variables")
		} else {
			avatars = avatar.NewClient(cfg.AI, cfg.Image)
			countrySvc = countryservice.NewService(aiSvc, cfg.Store.VerifyCacheTTL)
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("OpenAI credentials not configured, skipping AI initialization")
	}

	var infoSvc *countryservice.InfoService
	if aiSvc != nil && cfg.Weather.Enabled() {
		infoSvc = countryservice.NewInfoService(aiSvc, weather.NewClient(cfg.Weather))
		log.Println("country info service initialized successfully")
	} else {
		log.Println("weather credentials not configured, skipping country info initialization")
	}

	router := handler.NewRouter(chatSvc, aiSvc, avatars, countrySvc, infoSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("GlobeTalk backend listening on %s", serverCfg.Addr)
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
