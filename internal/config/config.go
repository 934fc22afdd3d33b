// internal/config/config.go
//
// Environment configuration for the server.
// Load reads a `.env` file when present (godotenv) and then the process
// environment; every setting has a development default.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port         string
	LogLevel     string
	LogPretty    bool
	ClientOrigin string

	RoundSeconds int           // ticks per round
	TickInterval time.Duration // real time per tick
	SessionTTL   time.Duration // idle games are dropped after this

	Dictionary string // "static" or "sqlite"
	Locale     string
	DBPath     string

	JWTSecret string
	TokenTTL  time.Duration
	DailySalt string

	SubmitRPS   float64
	SubmitBurst int

	AdminUser         string
	AdminPasswordHash string // bcrypt; empty disables /admin
}

// Load builds a Config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, reading from environment variables")
	}
	return &Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getBool("LOG_PRETTY", false),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),

		RoundSeconds: getInt("ROUND_SECONDS", 30),
		TickInterval: getDuration("TICK_INTERVAL", time.Second),
		SessionTTL:   getDuration("SESSION_TTL", 30*time.Minute),

		Dictionary: strings.ToLower(getEnv("DICTIONARY", "static")),
		Locale:     getEnv("DICT_LOCALE", "en"),
		DBPath:     getEnv("DB_PATH", "./data/wordscramble.db"),

		JWTSecret: getEnv("JWT_SECRET", "dev_secret_change_me"),
		TokenTTL:  getDuration("TOKEN_TTL", 2*time.Hour),
		DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),

		SubmitRPS:   getFloat("SUBMIT_RPS", 5),
		SubmitBurst: getInt("SUBMIT_BURST", 10),

		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid integer, using default")
		return def
	}
	return n
}

func getFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Float64("default", def).Msg("invalid number, using default")
		return def
	}
	return f
}

func getBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", k).Str("value", v).Dur("default", def).Msg("invalid duration, using default")
		return def
	}
	return d
}
