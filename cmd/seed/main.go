package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/franciscosanchezn/nutri-regimen-api/internal/config"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/database"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/seed"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	reset := flag.Bool("reset", false, "clear every table before seeding")
	verify := flag.String("verify", "", "after seeding, check a username:password pair")
	flag.Parse()

	log.SetFormatter(&log.JSONFormatter{})
	log.Info("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	// The seed tool never talks to the identity provider.
	driver := strings.ToLower(config.GetEnvWithDefault("DB_DRIVER", "sqlite"))
	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver:   driver,
		URL:      config.GetEnvWithDefault("DATABASE_URL", ""),
		Host:     config.GetEnvWithDefault("DB_HOST", "localhost"),
		Port:     config.GetEnvWithDefault("DB_PORT", "5432"),
		User:     config.GetEnvWithDefault("DB_USER", "user"),
		Password: config.GetEnvWithDefault("DB_PASSWORD", "password"),
		Name:     config.GetEnvWithDefault("DB_NAME", "nutri_regimen"),
		SSLMode:  config.GetEnvWithDefault("DB_SSLMODE", "disable"),
		Path:     config.GetEnvWithDefault("DB_PATH", "nutri_regimen.sqlite"),
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	ctx := context.Background()
	summary, err := seed.Run(ctx, db, seed.Options{Reset: *reset})
	if err != nil {
		log.WithError(err).Fatal("Failed to seed database")
	}
	json.NewEncoder(os.Stdout).Encode(summary)

	if *verify == "" {
		return
	}
	username, password, ok := strings.Cut(*verify, ":")
	if !ok {
		log.Fatal("-verify expects username:password")
	}
	user, err := services.NewUserService(db).Authenticate(ctx, username, password)
	if err != nil {
		log.WithError(err).WithField("username", username).Fatal("Credential check failed")
	}
	log.WithFields(log.Fields{"user_id": user.ID, "username": username}).Info("Credential check passed")
}
