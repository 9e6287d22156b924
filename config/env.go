package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads a local .env once. Missing files are fine; production
// deployments inject real environment variables.
func LoadEnv() {
	envOnce.Do(func() {
		godotenv.Load()
	})
}

func ServerPort() int {
	LoadEnv()
	return intFromEnv("PORT", 8080)
}

func SnapshotPath() string {
	LoadEnv()
	return strFromEnv("SNAPSHOT_PATH", "data/snapshot.json")
}

// CORSOrigins returns allowed browser origins, comma separated in the
// environment. Empty means allow all, which suits local single-user use.
func CORSOrigins() []string {
	LoadEnv()
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func strFromEnv(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
