package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/paulikeo/mercadito/internal/api"
	"github.com/paulikeo/mercadito/internal/auth"
	"github.com/paulikeo/mercadito/internal/config"
	"github.com/paulikeo/mercadito/internal/database"
	"github.com/paulikeo/mercadito/internal/logger"
	"github.com/paulikeo/mercadito/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply database migrations")
	}

	// Set up services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)

	// Set up router
	router := api.NewRouter(tokens, userService, productService, cfg.CORSOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
