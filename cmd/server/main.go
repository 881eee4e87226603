// Package main is the entry point for the flight fare scraper service.
//
//	@title						Flight Fare Scraper API
//	@version					1.0.0
//	@description				Scrapes flight fares from a travel booking site with a real browser, with a result cache and a user-assisted manual mode for pages that resist automated extraction.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flightbot/flight-fare-scraper/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http
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

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flightbot/flight-fare-scraper/docs"

	farehttp "github.com/flightbot/flight-fare-scraper/internal/adapter/http"
	"github.com/flightbot/flight-fare-scraper/internal/adapter/http/middleware"
	"github.com/flightbot/flight-fare-scraper/internal/cache"
	"github.com/flightbot/flight-fare-scraper/internal/config"
	"github.com/flightbot/flight-fare-scraper/internal/infrastructure/logger"
	"github.com/flightbot/flight-fare-scraper/internal/scraper"
	"github.com/flightbot/flight-fare-scraper/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-fare-scraper",
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Configuration loaded")

	searcher := buildSearcher(cfg, log)
	defer searcher.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	// Scrape-backed handlers can run for minutes; the write timeout must
	// cover a full search.
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.Logger)

	handler := farehttp.NewFareHandler(searcher)
	farehttp.RegisterRoutes(e, handler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// buildSearcher wires the scraper, cache, and searcher from config.
func buildSearcher(cfg *config.Config, log *logger.Logger) *usecase.FlightSearcher {
	store := cache.Disabled()
	if cfg.Cache.Enabled {
		store = cache.New(
			cache.WithTTL(cfg.Cache.TTL),
			cache.WithMaxEntries(cfg.Cache.MaxEntries),
		)
	}

	pageScraper := scraper.New(cfg.Scraper, log)
	return usecase.NewFlightSearcher(pageScraper, store, log)
}

// gracefulShutdown blocks until an interrupt, then drains the server.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
