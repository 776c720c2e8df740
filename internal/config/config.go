// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package config

import (
	"fmt"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

// Environment names recognized by the application.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Environment string
	Server      ServerConfig
	Log         LogConfig
	Database    DatabaseConfig
	Provider    ProviderConfig
	Cloudinary  CloudinaryConfig
	SMTP        SMTPConfig
	Notify      NotifyConfig
	Admin       AdminConfig
	Session     SessionConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	PortalURL   string // borrowers portal users are sent back to
	MaxBodySize int    // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json; empty picks per environment
}

type DatabaseConfig struct {
	DSN string
}

// ProviderConfig holds the settings for the external face-match provider.
// When BaseURL or MerchantKey is empty the verifier runs in mock mode
// outside production.
type ProviderConfig struct {
	BaseURL     string
	MerchantKey string
	Center      string
	DataType    string
}

// Configured reports whether the live provider can be called.
func (p ProviderConfig) Configured() bool {
	return p.BaseURL != "" && p.MerchantKey != ""
}

// CloudinaryConfig holds the asset host credentials for selfie uploads.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Configured reports whether selfie uploads are possible.
func (c CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type SMTPConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

// NotifyConfig lists who receives the approval notification email.
type NotifyConfig struct {
	Recipients []string
}

type AdminConfig struct {
	DefaultPassword string
}

type SessionConfig struct { //nolint:govet // fieldalignment not critical
	CookieName string // Session cookie name
	MaxAge     int    // Session max age in seconds
	HashKey    string // 32-byte hex string for HMAC signing
	BlockKey   string // 32-byte hex string for AES encryption (optional)
	Secure     bool   // HTTPS only cookie
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Environment: cmd.String("environment"),
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			PortalURL:   cmd.String("portal-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Provider: ProviderConfig{
			BaseURL:     cmd.String("provider-base-url"),
			MerchantKey: cmd.String("provider-merchant-key"),
			Center:      cmd.String("provider-center"),
			DataType:    cmd.String("provider-data-type"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: cmd.String("cloudinary-cloud-name"),
			APIKey:    cmd.String("cloudinary-api-key"),
			APISecret: cmd.String("cloudinary-api-secret"),
			Folder:    cmd.String("cloudinary-folder"),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
		Notify: NotifyConfig{
			Recipients: ParseRecipients(cmd.String("notify-recipients")),
		},
		Admin: AdminConfig{
			DefaultPassword: cmd.String("admin-default-password"),
		},
		Session: SessionConfig{
			CookieName: cmd.String("session-cookie-name"),
			MaxAge:     int(cmd.Int("session-max-age")),
			HashKey:    cmd.String("session-hash-key"),
			BlockKey:   cmd.String("session-block-key"),
			Secure:     cmd.Bool("session-cookie-secure"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}

	return cfg
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// ParseRecipients splits a comma separated recipient list, dropping blanks.
func ParseRecipients(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	port := cfg.Server.Port

	// Hide the default HTTP port in the URL
	if port == 80 {
		return fmt.Sprintf("http://%s", host)
	}
	return fmt.Sprintf("http://%s:%d", host, port)
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "environment",
			Value:   EnvDevelopment,
			Usage:   "Runtime environment (development, production)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("ENVIRONMENT"), toml.TOML("environment", configFile)),
		},
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   4000,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for the application",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.StringFlag{
			Name:    "portal-url",
			Value:   "https://mcubeplus.com/",
			Usage:   "Borrowers portal URL users are linked back to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BORROWERS_PORTAL_URL"), toml.TOML("server.portal_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   4,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format (text, json; defaults to json in production)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/verifications.db",
			Usage:   "SQLite database path",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		// Face-match provider
		&cli.StringFlag{
			Name:    "provider-base-url",
			Usage:   "Base URL of the selfie verification provider (empty enables mock mode outside production)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SELFIE_API_BASE_URL"), toml.TOML("provider.base_url", configFile)),
		},
		&cli.StringFlag{
			Name:    "provider-merchant-key",
			Usage:   "Merchant key for the selfie verification provider",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SELFIE_MERCHANT_KEY"), toml.TOML("provider.merchant_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "provider-center",
			Value:   "BRANCHLESS",
			Usage:   "Center identifier sent with verification requests",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SELFIE_CENTER"), toml.TOML("provider.center", configFile)),
		},
		&cli.StringFlag{
			Name:    "provider-data-type",
			Value:   "PNG",
			Usage:   "Image data type sent with verification requests",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SELFIE_DATA_TYPE"), toml.TOML("provider.data_type", configFile)),
		},
		// Cloudinary asset host
		&cli.StringFlag{
			Name:    "cloudinary-cloud-name",
			Usage:   "Cloudinary cloud name for selfie uploads",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CLOUDINARY_NAME"), toml.TOML("cloudinary.cloud_name", configFile)),
		},
		&cli.StringFlag{
			Name:    "cloudinary-api-key",
			Usage:   "Cloudinary API key",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CLOUDINARY_API_KEY"), toml.TOML("cloudinary.api_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "cloudinary-api-secret",
			Usage:   "Cloudinary API secret",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CLOUDINARY_API_SECRET"), toml.TOML("cloudinary.api_secret", configFile)),
		},
		&cli.StringFlag{
			Name:    "cloudinary-folder",
			Value:   "mcube_verification_selfies",
			Usage:   "Cloudinary folder for selfie uploads",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CLOUDINARY_FOLDER"), toml.TOML("cloudinary.folder", configFile)),
		},
		// SMTP / notifications
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP server host",
			Sources: cli.NewValueSourceChain(cli.EnvVar("EMAIL_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP server port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("EMAIL_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("EMAIL_USER"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("EMAIL_PASS"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Usage:   "From address for outgoing mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("EMAIL_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Usage:   "Display name for outgoing mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("EMAIL_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS for SMTP connections",
			Sources: cli.NewValueSourceChain(cli.EnvVar("EMAIL_TLS"), toml.TOML("smtp.tls", configFile)),
		},
		&cli.StringFlag{
			Name:    "notify-recipients",
			Usage:   "Comma separated recipients for approval notifications",
			Sources: cli.NewValueSourceChain(cli.EnvVar("KYC_SUCCESS_RECIPIENTS"), toml.TOML("notify.recipients", configFile)),
		},
		// Admin bootstrap
		&cli.StringFlag{
			Name:    "admin-default-password",
			Value:   "admin123",
			Usage:   "Password for the bootstrap admin account",
			Sources: cli.NewValueSourceChain(cli.EnvVar("ADMIN_DEFAULT_PASSWORD"), toml.TOML("admin.default_password", configFile)),
		},
		// Session flags
		&cli.StringFlag{
			Name:    "session-cookie-name",
			Value:   "_admin_session",
			Usage:   "Admin session cookie name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_COOKIE_NAME"), toml.TOML("session.cookie_name", configFile)),
		},
		&cli.IntFlag{
			Name:    "session-max-age",
			Value:   86400, // 24 hours in seconds
			Usage:   "Admin session max age in seconds",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_MAX_AGE"), toml.TOML("session.max_age", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-hash-key",
			Usage:   "Session hash key (32-byte hex, auto-generated if empty in dev)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_HASH_KEY"), toml.TOML("session.hash_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-block-key",
			Usage:   "Session block key for encryption (32-byte hex, optional)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_BLOCK_KEY"), toml.TOML("session.block_key", configFile)),
		},
		&cli.BoolFlag{
			Name:    "session-cookie-secure",
			Usage:   "HTTPS only session cookie",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_COOKIE_SECURE"), toml.TOML("session.cookie_secure", configFile)),
		},
	}
}
