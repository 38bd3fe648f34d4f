// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath      = pflag.String("config", ".", "Directory containing config.toml")
	validLogLevels  = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers  = []string{"sqlite", "postgres"}
	validAppEnvs    = []string{"development", "production", "test"}
	ErrNoJWTSecret  = errors.New("jwt.secret must be set in production")
	ErrInvalidLevel = errors.New("invalid log level provided")
)

// Config is the typed view of everything Setup loaded into viper.
// Handlers receive it through internal.Deps instead of reading env vars.
type Config struct {
	Env      string
	LogLevel string

	Port        int
	CORSOrigins []string

	DBDriver string
	DBDSN    string

	JWTSecret          string
	JWTSecretGenerated bool
	CookieSecure       bool

	SearchAPIKey   string
	SearchCX       string
	SearchEndpoint string
	SearchTimeout  time.Duration

	EmailVerificationRequired bool
	PublicBaseURL             string

	MailHost     string
	MailPort     int
	MailSender   string
	MailPassword string

	CacheTTL       time.Duration
	CacheRedisAddr string

	RateLimit int
}

// Production reports whether the app runs with production semantics
// (secure cookies, generic 500 messages, mandatory JWT secret).
func (c *Config) Production() bool {
	return c.Env == "production"
}

// SearchConfigured reports whether both search provider credentials are present.
func (c *Config) SearchConfigured() bool {
	return c.SearchAPIKey != "" && c.SearchCX != ""
}

// SecureCookies reports whether auth cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.CookieSecure || c.Production()
}

func genSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	if !pflag.Parsed() {
		pflag.Parse()
	}
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.env", "app_env", "node_env")
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port", "port")
	v.BindEnv("host.cors_origins", "host_cors", "client_origins")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn", "database_url")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("cookie.secure", "cookie_secure")

	v.BindEnv("search.api_key", "search_api_key", "google_cse_key")
	v.BindEnv("search.cx", "search_cx", "google_cse_cx")
	v.BindEnv("search.endpoint", "search_endpoint")
	v.BindEnv("search.timeout", "search_timeout")

	v.BindEnv("auth.email_verification_required", "email_verification_required")
	v.BindEnv("auth.public_base_url", "public_api_base_url")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender_address")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("cache.ttl", "cache_ttl")
	v.BindEnv("cache.redis_addr", "cache_redis_addr")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 4000)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("cookie.secure", false)

	v.SetDefault("search.endpoint", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("search.timeout", "10s")

	v.SetDefault("auth.email_verification_required", false)

	v.SetDefault("mail.port", 587)

	v.SetDefault("cache.ttl", "1m")

	v.SetDefault("security.rate_limit", 10)

	// The config file is optional, everything can come from the environment
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validAppEnvs, strings.ToLower(v.GetString("app.env"))) {
		return errors.New("invalid app.env provided")
	}
	v.Set("app.env", strings.ToLower(v.GetString("app.env")))

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return ErrInvalidLevel
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if v.GetDuration("search.timeout") <= 0 {
		return errors.New("search.timeout must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetString("jwt.secret") == "" {
		if v.GetString("app.env") == "production" {
			return ErrNoJWTSecret
		}

		secret, err := genSecret()
		if err != nil {
			return fmt.Errorf("failed to generate jwt.secret, %w", err)
		}

		v.Set("jwt.secret", secret)
		v.Set("jwt.generated", true)
	}

	return nil
}

// LogWarnings reports configuration that works but probably isn't what the
// operator wants. It runs after the logger is set up since Setup can't log.
func (c *Config) LogWarnings(log *zap.Logger) {
	if c.JWTSecretGenerated {
		log.Warn("jwt.secret not set, generated a temporary one for this session")
	}

	if !c.SearchConfigured() {
		log.Warn("Search provider not configured, recommendations will use the fallback catalog")
	}

	if c.EmailVerificationRequired && c.MailHost == "" {
		log.Warn("Email verification is required but no mail.host is set, verification links will only be logged")
	}
}

// Load builds a Config out of the values Setup registered in viper.
func Load() *Config {
	return &Config{
		Env:      v.GetString("app.env"),
		LogLevel: v.GetString("app.log_level"),

		Port:        v.GetInt("host.port"),
		CORSOrigins: splitList(v.GetString("host.cors_origins")),

		DBDriver: v.GetString("db.driver"),
		DBDSN:    v.GetString("db.dsn"),

		JWTSecret:          v.GetString("jwt.secret"),
		JWTSecretGenerated: v.GetBool("jwt.generated"),
		CookieSecure:       v.GetBool("cookie.secure"),

		SearchAPIKey:   v.GetString("search.api_key"),
		SearchCX:       v.GetString("search.cx"),
		SearchEndpoint: v.GetString("search.endpoint"),
		SearchTimeout:  v.GetDuration("search.timeout"),

		EmailVerificationRequired: v.GetBool("auth.email_verification_required"),
		PublicBaseURL:             strings.TrimRight(v.GetString("auth.public_base_url"), "/"),

		MailHost:     v.GetString("mail.host"),
		MailPort:     v.GetInt("mail.port"),
		MailSender:   v.GetString("mail.sender"),
		MailPassword: v.GetString("mail.password"),

		CacheTTL:       v.GetDuration("cache.ttl"),
		CacheRedisAddr: v.GetString("cache.redis_addr"),

		RateLimit: v.GetInt("security.rate_limit"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}
