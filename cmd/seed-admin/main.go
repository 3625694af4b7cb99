// Command seed-admin creates or updates the operator account. There is no
// public registration endpoint, so this runs once at deploy time with
// SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD set.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"autohaus-service/internal/auth"
	"autohaus-service/internal/config"
	"autohaus-service/internal/db"
	"autohaus-service/internal/logger"
	"autohaus-service/internal/model"
	"autohaus-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	v := viper.New()
	v.AutomaticEnv()
	username := v.GetString("SEED_ADMIN_USERNAME")
	password := v.GetString("SEED_ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal().Msg("SEED_ADMIN_USERNAME and SEED_ADMIN_PASSWORD are required")
	}
	if len(password) < 8 {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD must be at least 8 characters")
	}

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admins := repository.NewAdminRepository(database)

	existing, err := admins.GetByUsername(ctx, username)
	if err == nil {
		existing.PasswordHash = hash
		if err := admins.Update(ctx, existing); err != nil {
			log.Fatal().Err(err).Msg("update admin failed")
		}
		log.Info().Str("username", username).Msg("admin password updated")
		return
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: hash,
	}
	if err := admins.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("create admin failed")
	}
	log.Info().Str("username", username).Msg("admin created")
}
