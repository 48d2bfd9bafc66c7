package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

const (
	defaultDatabasePath   = "records.db"
	defaultPort           = "8080"
	defaultMaxUploadBytes = 32 << 20 // 32 MiB multipart limit
	defaultTokenHours     = 24
)

type Config struct {
	// database path
	DatabasePath string

	// HTTP listen port
	Port string

	// auth settings
	JWTSecret     string
	TokenHours    int
	AdminUsername string
	AdminPassword string

	// upload settings
	MaxUploadBytes int64

	// external image host
	ImgBBAPIKey string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	adminUsername := getEnvOrDefault("ADMIN_USERNAME", "admin")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD must be set")
	}

	cfg := Config{
		DatabasePath:   getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		Port:           getEnvOrDefault("PORT", defaultPort),
		JWTSecret:      jwtSecret,
		TokenHours:     getEnvIntOrDefault("TOKEN_HOURS", defaultTokenHours),
		AdminUsername:  adminUsername,
		AdminPassword:  adminPassword,
		MaxUploadBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		ImgBBAPIKey:    os.Getenv("IMGBB_API_KEY"),
	}

	return cfg, nil
}
