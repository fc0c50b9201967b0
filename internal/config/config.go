package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// HTTP server
	HTTPAddr string

	// Legacy correlation: how far forward the nearest-subsequent rule may
	// reach, in hours.
	ProximityBoundHours int

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables, then applies the
// optional YAML config file named by CHATSTATS_CONFIG on top.
func Load() (Config, error) {
	cfg := Config{
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "analytics"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "chatlog"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		HTTPAddr: getEnv("CHATSTATS_HTTP_ADDR", ":3001"),

		ProximityBoundHours: getEnvInt("CHATSTATS_PROXIMITY_BOUND_HOURS", 24),

		LogFile:  getEnv("CHATSTATS_LOG_FILE", "/tmp/chatstats.log"),
		LogLevel: parseLogLevel(getEnv("CHATSTATS_LOG_LEVEL", "INFO")),
	}

	if path := os.Getenv("CHATSTATS_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// fileConfig mirrors Config for the YAML file; zero values mean "keep the
// environment setting".
type fileConfig struct {
	SurrealDB struct {
		URL       string `yaml:"url"`
		Namespace string `yaml:"namespace"`
		Database  string `yaml:"database"`
		User      string `yaml:"user"`
		Pass      string `yaml:"pass"`
		AuthLevel string `yaml:"auth_level"`
	} `yaml:"surrealdb"`
	HTTPAddr            string `yaml:"http_addr"`
	ProximityBoundHours int    `yaml:"proximity_bound_hours"`
	LogFile             string `yaml:"log_file"`
	LogLevel            string `yaml:"log_level"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&c.SurrealDBURL, fc.SurrealDB.URL)
	setIf(&c.SurrealDBNamespace, fc.SurrealDB.Namespace)
	setIf(&c.SurrealDBDatabase, fc.SurrealDB.Database)
	setIf(&c.SurrealDBUser, fc.SurrealDB.User)
	setIf(&c.SurrealDBPass, fc.SurrealDB.Pass)
	setIf(&c.SurrealDBAuthLevel, fc.SurrealDB.AuthLevel)
	setIf(&c.HTTPAddr, fc.HTTPAddr)
	setIf(&c.LogFile, fc.LogFile)
	if fc.ProximityBoundHours > 0 {
		c.ProximityBoundHours = fc.ProximityBoundHours
	}
	if fc.LogLevel != "" {
		c.LogLevel = parseLogLevel(fc.LogLevel)
	}
	return nil
}

func setIf(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
