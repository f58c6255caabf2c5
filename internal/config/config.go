package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Worker  WorkerConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type LogConfig struct {
	Level  string
	Format string
}

type GeminiConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	Transport string
}

type StorageConfig struct {
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency int
}

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	env := getEnv("ENV", "production")
	defaultLevel := "info"
	if env == "development" {
		defaultLevel = "debug"
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Env:          env,
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "60s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "60s"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", defaultLevel),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Gemini: GeminiConfig{
			APIKey:    getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
			BaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Model:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			Transport: getEnv("GEMINI_TRANSPORT", TransportREST),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 3),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
