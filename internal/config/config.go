package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is built once in main and passed down explicitly; nothing reads
// environment state after startup.
type Config struct {
	Host          string
	Port          int
	AllowOrigins  []string
	LogLevel      string
	LogFile       string
	MaxUploadMB   int
	MappingConfig string // path to the field catalog JSON
	DatabaseURL   string // optional; enables the warehouse load endpoint option
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:          getenv("HOST", "127.0.0.1"),
		Port:          port,
		AllowOrigins:  origins,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFile:       getenv("LOG_FILE", "logs/tablemap-service.log"),
		MaxUploadMB:   mb,
		MappingConfig: getenv("MAPPING_CONFIG", "configs/mapping.json"),
		DatabaseURL:   getenv("DATABASE_URL", ""),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
