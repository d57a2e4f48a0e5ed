package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	ServerPort      string
	ServerHost      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxRequestBody  int64

	// Artifacts
	ArtifactDir        string
	ArtifactRetryDelay time.Duration

	// Intake
	InputBoundsFile string
	TerminologyFile string
}

func Load() *Config {
	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8090"),
		ServerHost:      getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		MaxRequestBody:  int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1024*1024)),

		ArtifactDir:        getEnv("ARTIFACT_DIR", "./artifacts"),
		ArtifactRetryDelay: getDuration("ARTIFACT_RETRY_DELAY", 200*time.Millisecond),

		InputBoundsFile: getEnv("INPUT_BOUNDS_FILE", ""),
		TerminologyFile: getEnv("TERMINOLOGY_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
