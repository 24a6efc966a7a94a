package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var AppConfig Config

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type Config struct {
	Environment   string
	ServerPort    string
	DatabaseURL   string
	JWTSecret     string
	JWTExpireDays int
	CookieDomain  string
	CSRFTTLSecs   int
	Redis         RedisConfig
}

func init() {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()
}

func LoadConfig() error {
	AppConfig = Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    getEnv("PORT", "5000"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpireDays: getEnvAsInt("JWT_EXPIRE_DAYS", 30),
		CookieDomain:  getEnv("DOMAIN", ""),
		CSRFTTLSecs:   getEnvAsInt("CSRF_TTL_SECONDS", 3600),
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
	}
	AppConfig.Redis.Enabled = AppConfig.Redis.Address != ""

	if AppConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if AppConfig.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback
	}
	return value
}
