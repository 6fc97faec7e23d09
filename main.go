package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marsconnect/mars-quest-backend/api"
	"github.com/marsconnect/mars-quest-backend/config"
	"github.com/marsconnect/mars-quest-backend/database"
	"github.com/marsconnect/mars-quest-backend/models"
	"github.com/marsconnect/mars-quest-backend/services"
)

func main() {
	fmt.Println("Initializing Mars Quest backend...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	if missing := config.Missing(c, "DATABASE_URL", "JWT_SECRET"); len(missing) > 0 {
		fmt.Printf("Missing required environment variables: %s\n", strings.Join(missing, ", "))
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.GetString(c, "DATABASE_URL", ""),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		fmt.Printf("Error enabling uuid-ossp extension: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.Solution{},
		&models.Mission{},
		&models.TelemetryReading{},
	); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	nasa := services.NewNASAClient(
		config.GetString(c, "NASA_API_BASE_URL", services.DefaultNASABaseURL),
		config.GetString(c, "NASA_API_KEY", ""),
	)

	// Asset storage is optional; upload routes answer with a configuration
	// error when no bucket is set.
	var uploader services.Uploader
	if bucket := config.GetString(c, "ASSET_BUCKET", ""); bucket != "" {
		s3Uploader, err := services.NewS3Uploader(context.Background(), bucket)
		if err != nil {
			fmt.Printf("Error configuring asset storage: %v\n", err)
			os.Exit(1)
		}
		uploader = s3Uploader
	} else {
		fmt.Println("Warning: ASSET_BUCKET not set, file uploads are disabled")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, nasa, uploader)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			fmt.Printf("Error closing database connection: %v\n", err)
		}
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
