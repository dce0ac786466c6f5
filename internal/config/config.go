package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	ServerPort   string
	GinMode      string
	LogLevel     string
	CORSOrigin   string
	SeedDemoUser bool
}

func Load() *Config {
	// A missing .env file is fine; real environment variables win either way.
	_ = godotenv.Load()

	return &Config{
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "taskuser"),
		DBPassword:   getEnv("DB_PASSWORD", "taskpassword"),
		DBName:       getEnv("DB_NAME", "task_tracker"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:5173"),
		SeedDemoUser: getEnvBool("SEED_DEMO_USER", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
