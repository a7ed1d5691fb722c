package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SiteModeRecent    = "recent"
	SiteModeBookmarks = "bookmarks"

	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SiteMode string // "recent" | "bookmarks"
	Store    string // "redis" | "memory"
	SeedFile string // optional yaml seed (theme, bookmarks, recent)

	WeatherEnabled bool
	GeoURL         string // geolocation of the caller's address
	GeoByIPURL     string // geolocation of a given address, %s is the IP
	ForecastURL    string // forecast endpoint, queried with latitude/longitude

	RateLimit int // requests per minute per IP on mutating routes

	// Redis
	RedisAddr             string
	RedisUser             string
	RedisPassword         string
	RedisPasswordRequired bool
	RedisDB               int
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration
	RedisPoolSize         int
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries, doubles
	RedisWarnThreshold    int

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // trust X-Forwarded-For and friends
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort:      getenv("TERMTAB_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("TERMTAB_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("TERMTAB_LOG_LEVEL", "info"),
		PrettyLog: mustBool("TERMTAB_PRETTY_LOG", true),

		SiteMode: strings.ToLower(getenv("TERMTAB_SITE_MODE", SiteModeRecent)),
		Store:    strings.ToLower(getenv("TERMTAB_STORE", StoreRedis)),
		SeedFile: getenv("TERMTAB_SEED_FILE", ""),

		WeatherEnabled: mustBool("TERMTAB_WEATHER_ENABLED", true),
		GeoURL:         getenv("TERMTAB_GEO_URL", "https://ipapi.co/json/"),
		GeoByIPURL:     getenv("TERMTAB_GEO_IP_URL", "https://ipapi.co/%s/json/"),
		ForecastURL:    getenv("TERMTAB_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),

		RateLimit: getenvInt("TERMTAB_RATE_LIMIT", 120),

		RedisAddr:             getenv("TERMTAB_REDIS_ADDR", "localhost:6379"),
		RedisUser:             getenv("TERMTAB_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("TERMTAB_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("TERMTAB_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("TERMTAB_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		AllowedHosts: splitAndTrim(getenv("TERMTAB_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("TERMTAB_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("TERMTAB_TRUST_PROXY", false),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate checks the values that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.SiteMode {
	case SiteModeRecent, SiteModeBookmarks:
	default:
		return fmt.Errorf("TERMTAB_SITE_MODE must be %q or %q, got %q", SiteModeRecent, SiteModeBookmarks, c.SiteMode)
	}

	switch c.Store {
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("TERMTAB_REDIS_ADDR is required when TERMTAB_STORE=redis")
		}
		if c.RedisPasswordRequired && c.RedisPassword == "" {
			return fmt.Errorf("TERMTAB_REDIS_PASSWORD is required when TERMTAB_REDIS_PASSWORD_REQUIRED=true")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("TERMTAB_STORE must be %q or %q, got %q", StoreRedis, StoreMemory, c.Store)
	}

	if c.RateLimit < 1 {
		return fmt.Errorf("TERMTAB_RATE_LIMIT must be >= 1, got %d", c.RateLimit)
	}
	return nil
}

// BookmarkMode reports whether the site grid is user-curated.
func (c *Config) BookmarkMode() bool {
	return c.SiteMode == SiteModeBookmarks
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
