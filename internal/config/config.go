// Package config reads settings from the environment, a .env file and an
// optional YAML file. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"

	"github.com/Tomlord1122/kanban-backend/internal/database"
)

const (
	keyPort       = "port"
	keyDBHost     = "db.host"
	keyDBPort     = "db.port"
	keyDBDatabase = "db.database"
	keyDBUsername = "db.username"
	keyDBPassword = "db.password"
	keyDBSchema   = "db.schema"
	keyDBSSLMode  = "db.sslmode"
	keyRedisURL   = "redis_url"
	keyPendingTTL = "pending_ttl"
	keyLogLevel   = "log.level"
	keyLogFormat  = "log.format"
	keySeed       = "seed"
)

var envBindings = map[string]string{
	keyPort:       "PORT",
	keyDBHost:     "BLUEPRINT_DB_HOST",
	keyDBPort:     "BLUEPRINT_DB_PORT",
	keyDBDatabase: "BLUEPRINT_DB_DATABASE",
	keyDBUsername: "BLUEPRINT_DB_USERNAME",
	keyDBPassword: "BLUEPRINT_DB_PASSWORD",
	keyDBSchema:   "BLUEPRINT_DB_SCHEMA",
	keyDBSSLMode:  "BLUEPRINT_DB_SSLMODE",
	keyRedisURL:   "REDIS_URL",
	keyPendingTTL: "PENDING_TTL",
	keyLogLevel:   "LOG_LEVEL",
	keyLogFormat:  "LOG_FORMAT",
	keySeed:       "SEED",
}

type Config struct {
	Port     int
	Database database.Config
	// RedisURL selects the Redis pending ledger. Empty keeps the ledger
	// in memory.
	RedisURL   string
	PendingTTL time.Duration
	LogLevel   string
	LogFormat  string
	// Seed stores the sample boards at startup when the database is empty.
	Seed bool
}

// Load builds the configuration. configFile may be empty.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetDefault(keyPort, 8080)
	v.SetDefault(keyDBHost, "localhost")
	v.SetDefault(keyDBPort, "5432")
	v.SetDefault(keyDBSSLMode, "disable")
	v.SetDefault(keyPendingTTL, "24h")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keySeed, false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Port: v.GetInt(keyPort),
		Database: database.Config{
			Host:     v.GetString(keyDBHost),
			Port:     v.GetString(keyDBPort),
			Database: v.GetString(keyDBDatabase),
			Username: v.GetString(keyDBUsername),
			Password: v.GetString(keyDBPassword),
			Schema:   v.GetString(keyDBSchema),
			SSLMode:  v.GetString(keyDBSSLMode),
		},
		RedisURL:   v.GetString(keyRedisURL),
		PendingTTL: v.GetDuration(keyPendingTTL),
		LogLevel:   v.GetString(keyLogLevel),
		LogFormat:  v.GetString(keyLogFormat),
		Seed:       v.GetBool(keySeed),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.PendingTTL <= 0 {
		errs = append(errs, fmt.Errorf("pending_ttl must be positive"))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log format %q is not text or json", c.LogFormat))
	}
	return errors.Join(errs...)
}
