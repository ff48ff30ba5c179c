package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/harmoni-app/relay/internal/api/handlers"
	"github.com/harmoni-app/relay/internal/api/middleware"
	"github.com/harmoni-app/relay/internal/config"
	"github.com/harmoni-app/relay/internal/logger"
	"github.com/harmoni-app/relay/internal/services"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	svcs, err := services.InitializeServices(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           setupRouter(svcs, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.OpenAI.Timeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msgf("Server starting, health check at http://localhost:%d/health", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	var metricsSrv *http.Server
	if cfg.Server.MetricsAddr != "" {
		metricsSrv = setupMetricsServer(svcs, cfg.Server.MetricsAddr)
		go func() {
			log.Info().Str("addr", metricsSrv.Addr).Msg("Metrics server starting")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Metrics ListenAndServe error")
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown did not complete cleanly")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Metrics server shutdown did not complete cleanly")
		}
	}
}

// setupRouter builds the public handler: routes wrapped in CORS, request ids,
// panic recovery, access logging and metrics, outermost first.
func setupRouter(svcs *services.Services, cfg *config.Config) http.Handler {
	r := mux.NewRouter()
	handlers.RegisterRoutes(r, svcs.GetChatService(), cfg)

	var h http.Handler = r
	h = middleware.Metrics(svcs.GetMetrics(), r)(h)
	h = middleware.AccessLog(h)
	h = middleware.Recover(h)
	h = middleware.RequestID(h)
	h = middleware.CORS(cfg.Server.AllowedOrigins)(h)
	return h
}

func setupMetricsServer(svcs *services.Services, addr string) *http.Server {
	r := mux.NewRouter()
	r.Handle("/metrics", svcs.GetMetrics().Handler()).Methods(http.MethodGet)

	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
