// Package config loads configuration from the environment, with defaults
// suitable for local development. Commands load a .env file first via
// godotenv.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Database
	SQLiteDBPath string

	// Auth
	JWTSecret     string
	TokenDuration time.Duration

	// AMQP backup queue (empty URL disables backups)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Backup worker
	BackupDir     string
	BackupKeep    int
	PruneInterval time.Duration

	// Bootstrap admin user, created on first run when no users exist.
	AdminUser     string
	AdminPassword string
}

func Load(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}
	getInt := func(key string, def int) int {
		if v := getenv(key); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				return i
			}
		}
		return def
	}
	getDuration := func(key string, def time.Duration) time.Duration {
		if v := getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				return d
			}
		}
		return def
	}

	return &Config{
		Port:         get("PORT", "8082"),
		SQLiteDBPath: get("SQLITE_DB_PATH", "./data/tally.db"),

		JWTSecret:     get("JWT_SECRET", ""),
		TokenDuration: getDuration("TOKEN_DURATION", 24*time.Hour),

		AMQPURL:      get("AMQP_URL", ""),
		AMQPExchange: get("AMQP_EXCHANGE", "tally"),
		AMQPQueue:    get("AMQP_QUEUE", "ledger_backups"),

		BackupDir:     get("BACKUP_DIR", "./data/backups"),
		BackupKeep:    getInt("BACKUP_KEEP", 5),
		PruneInterval: getDuration("PRUNE_INTERVAL", time.Hour),

		AdminUser:     get("ADMIN_USER", "admin"),
		AdminPassword: get("ADMIN_PASSWORD", ""),
	}
}

// Validate checks the configuration and returns all problems in one error.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		problems = append(problems, "SQLite database path cannot be empty")
	}

	if len(c.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be set to at least 16 characters")
	}
	if c.TokenDuration < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid token duration %v: must be at least 1 minute", c.TokenDuration))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.BackupKeep < 1 {
		problems = append(problems, fmt.Sprintf("invalid backup retention %d: must be at least 1", c.BackupKeep))
	}
	if c.PruneInterval < time.Minute {
		problems = append(problems, fmt.Sprintf("invalid prune interval %v: must be at least 1 minute", c.PruneInterval))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
