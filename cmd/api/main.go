package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"nutritrack/internal/adapter/repo"
	"nutritrack/internal/http/handlers"
	httpapi "nutritrack/internal/http/httpapi"
	"nutritrack/internal/infra"
	"nutritrack/internal/infra/geoip"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/profile"
	"nutritrack/internal/providers/openfoodfacts"
	"nutritrack/internal/realtime"
	"nutritrack/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	sqlRunner := infra.NewSQLRunner(dbpool, logger)

	kv, err := profileBackend(cfg, sqlRunner)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize profile backend")
	}

	targets, err := nutrition.NewTargetProvider(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize recommendations")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	catalog := openfoodfacts.NewClient(openfoodfacts.Options{
		BaseURL:        cfg.OFFBaseURL,
		UserAgent:      cfg.OFFUserAgent,
		Logger:         &logger,
		RequestTimeout: cfg.OFFTimeout,
		SearchTimeout:  cfg.OFFSearchTimeout,
		MaxRetries:     cfg.OFFMaxRetries,
	})

	hub := realtime.NewHub(&logger, cfg.CORSAllowedOrigins)
	defer hub.Close()

	app := &handlers.App{
		Profiles:       profile.NewStore(kv, cfg.ProfileKey, &logger),
		Targets:        targets,
		Journal:        repo.NewJournalRepository(sqlRunner),
		Catalog:        catalog,
		Events:         hub,
		DB:             dbpool,
		Logger:         &logger,
		Location:       cfg.Location,
		HistoryMaxDays: cfg.HistoryMaxDays,
		SearchPageSize: cfg.SearchPageSize,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		DefaultLocale:  cfg.DefaultLocale,
		CountryLookup:  resolver.Lookup(),
		RateLimit:      cfg.RateLimitPerMin,
		Realtime:       hub.ServeWS,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("profile_backend", cfg.ProfileBackend).
			Str("recommendations", cfg.RecommendationSource).
			Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	hub.Close()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func profileBackend(cfg *infra.Config, sql infra.SQLExecutor) (profile.KV, error) {
	switch cfg.ProfileBackend {
	case infra.BackendFile:
		return storage.NewFileStore(cfg.StoragePath)
	default:
		return repo.NewSettingsRepository(sql), nil
	}
}
