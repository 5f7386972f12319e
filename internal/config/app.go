package config

import (
	"fmt"
	"os"
	"time"
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port returns the listen address of the HTTP server, ":8080" by default.
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	return port
}

const defaultSessionTTL = 10 * time.Minute

// SessionTTL is how long a detached WebSocket game is kept for reconnects.
func SessionTTL() (time.Duration, error) {
	ttlStr, ok := os.LookupEnv("SESSION_TTL")
	if !ok {
		return defaultSessionTTL, nil
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
	}
	return ttl, nil
}
