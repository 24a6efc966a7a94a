package main

import (
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/config"
	"github.com/taskhive-dev/taskhive/internal/csrf"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/router"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := auth.InitJWT(config.AppConfig.JWTSecret, config.AppConfig.JWTExpireDays); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err := db.ConnectDatabase(config.AppConfig.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	handlers.Init(db.DB)

	var csrfStore *csrf.Store

	if config.AppConfig.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.Redis.Address,
			Password: config.AppConfig.Redis.Password,
			DB:       config.AppConfig.Redis.DB,
		})
		ttl := time.Duration(config.AppConfig.CSRFTTLSecs) * time.Second
		csrfStore = csrf.NewStore(client, ttl)
		log.Println("CSRF protection enabled (redis-backed token store)")
	}

	r := router.NewRouter(csrfStore)

	log.Printf("Server starting on port %s", config.AppConfig.ServerPort)

	if err := r.Run(":" + config.AppConfig.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
