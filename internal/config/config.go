// Package config loads server settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// MemoryDB selects the in-memory store instead of a SQLite file.
const MemoryDB = "memory"

// Config holds every setting the server reads at startup.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/app.db"`

	WordsStartFile      string `env:"WORDS_START_FILE"`
	WordsDictionaryFile string `env:"WORDS_DICTIONARY_FILE"`
	DailySalt           string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"wordsmith_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Environment    string `env:"NODE_ENV" envDefault:"development"`
}

// Load parses the process environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether cookies should be Secure.
func (c Config) Production() bool { return c.Environment == "production" }

// InMemory reports whether sessions live only in process memory.
func (c Config) InMemory() bool { return c.DBPath == "" || c.DBPath == MemoryDB }

// TokenTTL is the lifetime of issued auth tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}
