package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server holds the API process settings, read from the environment.
type Server struct {
	Port       string
	Env        string
	LogLevel   string
	LogPretty  bool
	RunTTL     time.Duration
	StreamPace time.Duration
}

// LoadServer reads server settings from the environment, after loading a
// .env file from the working directory if one exists.
func LoadServer() Server {
	_ = godotenv.Load()

	return Server{
		Port:       getEnv("API_PORT", "8080"),
		Env:        getEnv("API_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogPretty:  getEnvAsBool("LOG_PRETTY", false),
		RunTTL:     getEnvAsDuration("RUN_TTL", time.Hour),
		StreamPace: getEnvAsDuration("STREAM_PACE", 100*time.Millisecond),
	}
}

func (s Server) Production() bool { return s.Env == "production" }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
