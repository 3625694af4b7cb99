package main

import (
	"context"
	"fmt"
	"os"

	"autohaus-service/internal/auth"
	"autohaus-service/internal/cache"
	"autohaus-service/internal/client"
	"autohaus-service/internal/config"
	"autohaus-service/internal/db"
	httpapi "autohaus-service/internal/http"
	"autohaus-service/internal/http/middleware"
	"autohaus-service/internal/logger"
	"autohaus-service/internal/repository"
	"autohaus-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	// The filter cache is optional: without redis every facet request hits
	// the database.
	var facetCache service.FacetCache
	if cfg.Redis.URL != "" {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis.URL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("redis init failed")
		}
		defer redisClient.Close()
		facetCache = cache.NewFilterCache(redisClient, cfg.Redis.CacheTTL, log)
	} else {
		log.Warn().Msg("REDIS_URL not set, filter options cache disabled")
	}

	vehicleRepo := repository.NewVehicleRepository(database)
	blogRepo := repository.NewBlogRepository(database)
	formRepo := repository.NewFormSubmissionRepository(database)
	carListingRepo := repository.NewCarListingRepository(database)
	adminRepo := repository.NewAdminRepository(database)

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	parser := auth.NewParser(cfg.Auth.JWTSecret)

	var mailer service.EnquiryMailer
	if cfg.Mail.SMTPHost != "" && len(cfg.Mail.Recipients) > 0 {
		mailer = client.NewMailer(cfg, log)
	} else {
		log.Warn().Msg("SMTP not configured, enquiry notifications disabled")
	}

	imageStore := client.NewImageStoreClient(cfg)
	if !imageStore.Configured() {
		log.Warn().Msg("image store not configured, uploads disabled")
	}

	authService := service.NewAuthService(adminRepo, issuer)
	vehicleService := service.NewVehicleService(vehicleRepo, facetCache)
	blogService := service.NewBlogService(blogRepo)
	formService := service.NewFormService(formRepo, mailer, log)
	carListingService := service.NewCarListingService(carListingRepo)

	handler := httpapi.NewHandler(
		authService,
		vehicleService,
		blogService,
		formService,
		carListingService,
		imageStore,
		log,
	)

	router := httpapi.NewRouter(
		handler,
		middleware.Auth(parser),
		middleware.OptionalAuth(parser),
		cfg.Environment,
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("env", cfg.Environment).Msg("starting server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
