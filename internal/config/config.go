package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      int
	APIBaseURL      string
	APITimeout      time.Duration
	SessionSecret   string
	SessionDuration time.Duration
	MaxUploadSize   int64
	AdminPageSize   int
	ReaderPageSize  int
	SearchDebounce  time.Duration
	AllowedOrigin   string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 5 * 1024 * 1024
	}
	return size
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		APIBaseURL:      getEnv("API_BASE_URL", "https://test-fe.mysellerpintar.com/api"),
		APITimeout:      parseDuration(getEnv("API_TIMEOUT", "15s"), 15*time.Second),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionDuration: parseDuration(getEnv("SESSION_DURATION", "24h"), 24*time.Hour),
		MaxUploadSize:   parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "5242880")),
		AdminPageSize:   getEnvAsInt("ADMIN_PAGE_SIZE", 10),
		ReaderPageSize:  getEnvAsInt("READER_PAGE_SIZE", 9),
		SearchDebounce:  parseDuration(getEnv("SEARCH_DEBOUNCE", "400ms"), 400*time.Millisecond),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "*"),
	}
}
