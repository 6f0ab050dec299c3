package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string
	DBPath   string

	// StorageTimeout bounds every storage call made on behalf of a request.
	// Expiry surfaces to the caller as a storage failure.
	StorageTimeout time.Duration
}

func FromEnv() Config {
	return Config{
		HTTPAddr:       getenvDefault("GATE_HTTP_ADDR", ":8000"),
		DBPath:         getenvDefault("GATE_DB_PATH", "./data/access.db"),
		StorageTimeout: time.Duration(getenvInt("GATE_STORAGE_TIMEOUT_MS", 5000)) * time.Millisecond,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
