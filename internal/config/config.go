// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment keys.
const (
	EnvLogLevel           = "ECOTRIP_LOG_LEVEL"
	EnvLogFormat          = "ECOTRIP_LOG_FORMAT"
	EnvFactorsFile        = "ECOTRIP_FACTORS_FILE"
	EnvHTTPAddr           = "ECOTRIP_HTTP_ADDR"
	EnvCORSAllowedOrigins = "ECOTRIP_CORS_ALLOWED_ORIGINS"
	EnvCORSMaxAge         = "ECOTRIP_CORS_MAX_AGE"
	EnvRateLimitRPS       = "ECOTRIP_RATE_LIMIT_RPS"
	EnvRateLimitBurst     = "ECOTRIP_RATE_LIMIT_BURST"
	EnvShareSite          = "ECOTRIP_SHARE_SITE"
	EnvTrustedProxies     = "ECOTRIP_TRUSTED_PROXIES"
)

// Defaults.
const (
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	DefaultHTTPAddr       = ":8080"
	DefaultCORSMaxAge     = 86400
	DefaultRateLimitRPS   = 10.0
	DefaultRateLimitBurst = 20
	DefaultShareSite      = "ecotrip.com"
)

// CORSConfig holds the cross-origin settings of the HTTP API.
type CORSConfig struct {
	// AllowedOrigins is empty when every origin is allowed.
	AllowedOrigins []string
	AllowAll       bool
	MaxAge         int
}

// Config is the complete runtime configuration.
type Config struct {
	LogLevel       string
	LogFormat      string
	FactorsFile    string
	HTTPAddr       string
	CORS           CORSConfig
	RateLimitRPS   float64
	RateLimitBurst int
	ShareSite      string
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// are believed. Empty means the client IP is always the peer address.
	TrustedProxies []string
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// Load builds a Config from the environment. Invalid values are reported on
// logger and replaced by their defaults.
func Load(logger zerolog.Logger) Config {
	cfg := Config{
		LogLevel:       envOr(EnvLogLevel, DefaultLogLevel),
		LogFormat:      envOr(EnvLogFormat, DefaultLogFormat),
		FactorsFile:    strings.TrimSpace(os.Getenv(EnvFactorsFile)),
		HTTPAddr:       envOr(EnvHTTPAddr, DefaultHTTPAddr),
		CORS:           parseCORSConfig(logger),
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
		ShareSite:      envOr(EnvShareSite, DefaultShareSite),
		TrustedProxies: parseTrustedProxies(logger),
	}

	if s := os.Getenv(EnvRateLimitRPS); s != "" {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && parsed > 0 {
			cfg.RateLimitRPS = parsed
		} else {
			logger.Warn().Str("value", s).Msg("invalid " + EnvRateLimitRPS + ", using default")
		}
	}
	if s := os.Getenv(EnvRateLimitBurst); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			cfg.RateLimitBurst = parsed
		} else {
			logger.Warn().Str("value", s).Msg("invalid " + EnvRateLimitBurst + ", using default")
		}
	}

	return cfg
}

// parseCORSConfig reads the allowed origins and max age.
func parseCORSConfig(logger zerolog.Logger) CORSConfig {
	cfg := CORSConfig{MaxAge: DefaultCORSMaxAge}

	if origins := os.Getenv(EnvCORSAllowedOrigins); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			trimmed := strings.TrimSpace(o)
			if trimmed == "*" {
				cfg.AllowAll = true
				continue
			}
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}

		if cfg.AllowAll {
			logger.Warn().Msg("CORS wildcard origin (*) is insecure; use specific origins in production")
		}
	}

	if s := os.Getenv(EnvCORSMaxAge); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
			cfg.MaxAge = parsed
		} else {
			logger.Warn().Str("value", s).Msg("invalid " + EnvCORSMaxAge + ", using default")
		}
	}

	logger.Debug().
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("allow_all", cfg.AllowAll).
		Int("max_age", cfg.MaxAge).
		Msg("CORS configuration applied")

	return cfg
}

// parseTrustedProxies reads a comma-separated list of IPs and CIDRs.
// Invalid entries are skipped with a warning.
func parseTrustedProxies(logger zerolog.Logger) []string {
	var proxies []string
	for _, p := range strings.Split(os.Getenv(EnvTrustedProxies), ",") {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		if _, _, err := net.ParseCIDR(trimmed); err != nil && net.ParseIP(trimmed) == nil {
			logger.Warn().Str("value", trimmed).Msg("invalid " + EnvTrustedProxies + " entry, skipping")
			continue
		}
		proxies = append(proxies, trimmed)
	}
	return proxies
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
