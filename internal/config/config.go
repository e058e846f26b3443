package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host                  string
	Port                  int
	AllowOrigins          []string
	LogLevel              string
	LogFile               string
	MaxUploadMB           int
	DatabaseURL           string // empty = in-memory store (dev mode)
	PreviewRows           int
	DefaultWarrantyMonths int
}

func Load() Config {
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:                  getenv("HOST", "127.0.0.1"),
		Port:                  getint("PORT", 8084),
		AllowOrigins:          origins,
		LogLevel:              getenv("LOG_LEVEL", "info"),
		LogFile:               getenv("LOG_FILE", "logs/vault-import.log"),
		MaxUploadMB:           getint("MAX_UPLOAD_MB", 64),
		DatabaseURL:           getenv("DATABASE_URL", ""),
		PreviewRows:           getint("PREVIEW_ROWS", 20),
		DefaultWarrantyMonths: getint("DEFAULT_WARRANTY_MONTHS", 3),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getint reads a numeric env var; unset, garbage or non-positive values all
// fall back to the default instead of leaking a zero into the config.
func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
