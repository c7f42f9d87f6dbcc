// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	TLSMode       string // none|starttls|tls
	SkipVerifyTLS bool
}

// Enabled reports whether a mail server is configured.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

type MailtrapConfig struct {
	APIURL string
	Token  string
}

func (c MailtrapConfig) Enabled() bool { return c.APIURL != "" && c.Token != "" }

type StorageConfig struct {
	Driver string // local|s3|memory

	LocalDir       string
	LocalURLPrefix string

	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

type Config struct {
	HTTPAddr        string
	DBDSN           string
	LogLevel        slog.Level
	FlashSecret     string
	AdminToken      string
	HubsEnabled     []string
	WizardTTL       time.Duration
	DefaultPageSize int
	BaseURL         string

	MailFrom     string
	MailFromName string
	SMTP         SMTPConfig
	Mailtrap     MailtrapConfig
	Storage      StorageConfig
}

// Load reads the process environment.
func Load() (Config, error) { return LoadFrom(os.Getenv) }

// LoadFrom reads configuration through getenv.
func LoadFrom(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		DBDSN:        env("DB_DSN", ""),
		FlashSecret:  env("FLASH_SECRET", ""),
		AdminToken:   env("ADMIN_TOKEN", ""),
		HubsEnabled:  splitList(env("HUBS_ENABLED", "coupons,categories,products,staff")),
		BaseURL:      strings.TrimRight(env("APP_BASE_URL", "http://localhost:8080"), "/"),
		MailFrom:     env("MAIL_FROM", "no-reply@localhost"),
		MailFromName: env("MAIL_FROM_NAME", "Admin"),
		SMTP: SMTPConfig{
			Host:    env("SMTP_HOST", ""),
			Port:    env("SMTP_PORT", "587"),
			User:    env("SMTP_USER", ""),
			Pass:    env("SMTP_PASS", ""),
			TLSMode: strings.ToLower(env("SMTP_TLS_MODE", "starttls")),
		},
		Mailtrap: MailtrapConfig{
			APIURL: env("MAILTRAP_API_URL", ""),
			Token:  env("MAILTRAP_API_TOKEN", ""),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(env("STORAGE_DRIVER", "local")),
			LocalDir:        env("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix:  env("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:        env("S3_REGION", ""),
			S3Bucket:        env("S3_BUCKET", ""),
			S3Prefix:        env("S3_PREFIX", "uploads"),
			S3PublicBaseURL: env("S3_PUBLIC_BASE_URL", ""),
		},
	}

	var errs []error
	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	ttl, err := time.ParseDuration(env("WIZARD_TTL", "30m"))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("WIZARD_TTL: %w", err))
	case ttl <= 0:
		errs = append(errs, errors.New("WIZARD_TTL must be positive"))
	}
	cfg.WizardTTL = ttl

	size, err := strconv.Atoi(env("DEFAULT_PAGE_SIZE", "20"))
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("DEFAULT_PAGE_SIZE: %w", err))
	case size < 1 || size > 100:
		errs = append(errs, errors.New("DEFAULT_PAGE_SIZE must be between 1 and 100"))
	}
	cfg.DefaultPageSize = size

	if v := env("SMTP_SKIP_VERIFY", ""); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SMTP_SKIP_VERIFY: %w", err))
		}
		cfg.SMTP.SkipVerifyTLS = skip
	}

	switch cfg.SMTP.TLSMode {
	case "none", "starttls", "tls":
	default:
		errs = append(errs, fmt.Errorf("SMTP_TLS_MODE: unknown mode %q", cfg.SMTP.TLSMode))
	}

	return cfg, errors.Join(errs...)
}

// HubEnabled reports whether name is listed in HUBS_ENABLED.
func (c Config) HubEnabled(name string) bool {
	for _, h := range c.HubsEnabled {
		if h == name {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
