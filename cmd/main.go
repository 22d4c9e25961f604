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

	_ "github.com/franciscosanchezn/nutri-regimen-api/docs" // Import generated docs
	"github.com/franciscosanchezn/nutri-regimen-api/internal/auth"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/config"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/database"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/models"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/router"
	"github.com/franciscosanchezn/nutri-regimen-api/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const serviceName = "nutri-regimen-api"

// @title Nutri-Regimen API
// @version 1.0
// @description Meal planning backend: users, ingredients, recipes, meal plans and weekly assignments.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity provider access token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Load configuration
	configuration := loadConfig()

	// Initialize logger
	setUpLogger(configuration)

	// Initialize database connection
	db := setupDatabase(configuration)

	provider := auth.NewGoTrueProvider(configuration.SupabaseURL, configuration.SupabaseAnonKey, configuration.AuthTimeout)

	// Initialize Gin router
	handler := router.SetupRouter(router.Options{
		DB:             db,
		Provider:       provider,
		AllowedOrigins: configuration.AllowedOrigins,
		RequestTimeout: configuration.RequestTimeout,
		ServiceName:    serviceName,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%v:%d", configuration.Host, configuration.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start the server
	go func() {
		log.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), configuration.RequestTimeout+5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shut down")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server stopped")
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter. LOG_LEVEL wins over
// the APP_ENV default.
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(config.LevelFromEnv())
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects, migrates the schema and seeds demo data when
// SEED_ON_START is set and the ingredient table is empty.
func setupDatabase(conf *config.Config) *gorm.DB {
	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		URL:      conf.DatabaseURL,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	if !conf.SeedOnStart {
		return db
	}

	// Create only if is empty
	var count int64
	checkPanicErr(db.Model(&models.Ingredient{}).Count(&count).Error)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		_, err := seed.Run(context.Background(), db, seed.Options{})
		checkPanicErr(err)
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}
