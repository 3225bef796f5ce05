package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSearchURL = "https://www.googleapis.com/youtube/v3/search"

type Config struct {
	Port string

	YouTubeAPIKey    string
	YouTubeSearchURL string
	YouTubeTimeout   time.Duration

	// RedisURL is optional. When empty, queue events are delivered to
	// websocket clients in-process instead of through the broadcast channel.
	RedisURL string

	CORSAllowedOrigin string
	MaxBodyBytes      int64
	RequestTimeout    time.Duration

	LogLevel  string
	LogFormat string
}

// LoadFromEnv reads the service configuration. A missing YT_API_KEY is not an
// error: search requests fail individually and /diag reports it.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "3000"),
		YouTubeAPIKey:     strings.TrimSpace(os.Getenv("YT_API_KEY")),
		YouTubeSearchURL:  getenv("YT_SEARCH_URL", defaultSearchURL),
		YouTubeTimeout:    getenvDuration("YT_TIMEOUT", 10*time.Second),
		RedisURL:          getenv("REDIS_URL", ""),
		CORSAllowedOrigin: getenv("CORS_ALLOWED_ORIGIN", "*"),
		MaxBodyBytes:      int64(getenvInt("MAX_BODY_BYTES", 1<<20)),
		RequestTimeout:    getenvDuration("REQUEST_TIMEOUT", 15*time.Second),
		LogLevel:          strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	u, err := url.Parse(cfg.YouTubeSearchURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, errors.New("config: invalid YT_SEARCH_URL: " + cfg.YouTubeSearchURL)
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Config{}, errors.New("config: LOG_FORMAT must be json or text, got " + cfg.LogFormat)
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	raw := getenv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	raw := getenv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
