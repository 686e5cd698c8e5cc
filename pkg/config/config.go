// Package config reads runtime settings from the environment, optionally
// seeded from .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultUserAgent    = "films_app"
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultGeocodeDelay = time.Second
	DefaultHTTPTimeout  = 10 * time.Second
	DefaultListenAddr   = ":8000"
)

type Config struct {
	UserAgent    string
	NominatimURL string
	GeocodeDelay time.Duration
	HTTPTimeout  time.Duration
	CABundle     string
	GoogleAPIKey string

	CacheFile string
	RedisAddr string
	RedisPass string
	RedisDB   int
	RedisTTL  time.Duration

	LogLevel   string
	LogFormat  string
	ListenAddr string
}

// Load reads the given .env files (default ".env"), ignoring ones that do
// not exist, then builds a Config from the process environment. Variables
// already set in the environment win over .env values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv to look up variables.
func FromEnv(getenv func(string) string) (*Config, error) {
	c := &Config{
		UserAgent:    stringOr(getenv("FILMS_USER_AGENT"), DefaultUserAgent),
		NominatimURL: stringOr(getenv("FILMS_NOMINATIM_URL"), DefaultNominatimURL),
		CABundle:     getenv("FILMS_CA_BUNDLE"),
		GoogleAPIKey: getenv("GOOGLE_MAPS_API_KEY"),
		CacheFile:    getenv("FILMS_CACHE_FILE"),
		RedisAddr:    getenv("REDIS_ADDR"),
		RedisPass:    getenv("REDIS_PASS"),
		LogLevel:     stringOr(getenv("LOG_LEVEL"), "info"),
		LogFormat:    stringOr(getenv("LOG_FORMAT"), "text"),
		ListenAddr:   stringOr(getenv("LISTEN_ADDR"), DefaultListenAddr),
	}
	var err error
	if c.GeocodeDelay, err = durationOr(getenv, "FILMS_GEOCODE_DELAY", DefaultGeocodeDelay); err != nil {
		return nil, err
	}
	if c.HTTPTimeout, err = durationOr(getenv, "FILMS_HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if c.RedisTTL, err = durationOr(getenv, "FILMS_REDIS_TTL", 0); err != nil {
		return nil, err
	}
	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB %q", v)
		}
		c.RedisDB = n
	}
	return c, nil
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: negative duration", key, v)
	}
	return d, nil
}
