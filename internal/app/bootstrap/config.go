// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "RIGHTONREPAIR"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, notify_email, etc.
//   - Environment variables: RIGHTONREPAIR_MONGO_URI, RIGHTONREPAIR_NOTIFY_EMAIL, etc.
//   - Command-line flags: --mongo_uri, --notify_email, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "rightonrepair", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Flash cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "rightonrepair-flash", Desc: "Flash cookie name"},
	{Name: "session_domain", Default: "", Desc: "Cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Visitor session max age (e.g., 24h, 720h, 30m)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Media storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for media files"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local media"},

	// S3/CloudFront configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "uploads/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@rightonrepair.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Right On Repair", Desc: "From display name"},
	{Name: "notify_email", Default: "", Desc: "Office inbox for lead and ticket notifications (blank disables)"},

	{Name: "base_url", Default: "", Desc: "Public base URL (blank derives it from the request)"},

	// Content
	{Name: "seed_content", Default: false, Desc: "Seed the starter catalog when collections are empty"},
	{Name: "nav_cache_ttl", Default: "0", Desc: "Navigation cache lifetime (0 disables caching)"},

	// Form throttling
	{Name: "form_rate_limit_enabled", Default: true, Desc: "Throttle public form submissions per client IP"},
	{Name: "form_rate_limit_attempts", Default: 5, Desc: "Submissions allowed per window before lockout"},
	{Name: "form_rate_limit_window", Default: "15m", Desc: "Window for counting submissions"},
	{Name: "form_rate_limit_lockout", Default: "30m", Desc: "Lockout duration after exceeding the limit"},

	{Name: "ticket_lookups_per_minute", Default: 20, Desc: "Ticket lookups allowed per client IP per minute"},

	{Name: "submission_retention", Default: "0", Desc: "Delete contact submissions older than this (e.g., 8760h; 0 keeps them)"},

	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, RIGHTONREPAIR_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		// Media storage
		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		// S3/CloudFront
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),
		NotifyEmail:  appValues.String("notify_email"),

		BaseURL: strings.TrimRight(appValues.String("base_url"), "/"),

		// Content
		SeedContent: appValues.Bool("seed_content"),
		NavCacheTTL: appValues.Duration("nav_cache_ttl", 0),

		// Form throttling
		FormRateLimitEnabled:  appValues.Bool("form_rate_limit_enabled"),
		FormRateLimitAttempts: appValues.Int("form_rate_limit_attempts"),
		FormRateLimitWindow:   appValues.Duration("form_rate_limit_window", 15*time.Minute),
		FormRateLimitLockout:  appValues.Duration("form_rate_limit_lockout", 30*time.Minute),

		TicketLookupsPerMinute: appValues.Int("ticket_lookups_per_minute"),

		SubmissionRetention: appValues.Duration("submission_retention", 0),

		MetricsEnabled: appValues.Bool("metrics_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateBaseURL(appCfg.BaseURL); err != nil {
		logger.Error("invalid base URL", zap.String("base_url", appCfg.BaseURL), zap.Error(err))
		return err
	}
	if appCfg.FormRateLimitEnabled {
		if appCfg.FormRateLimitAttempts <= 0 {
			return fmt.Errorf("form_rate_limit_attempts must be positive, got %d", appCfg.FormRateLimitAttempts)
		}
		if appCfg.FormRateLimitWindow <= 0 || appCfg.FormRateLimitLockout <= 0 {
			return fmt.Errorf("form_rate_limit_window and form_rate_limit_lockout must be positive")
		}
	}
	if appCfg.TicketLookupsPerMinute <= 0 {
		return fmt.Errorf("ticket_lookups_per_minute must be positive, got %d", appCfg.TicketLookupsPerMinute)
	}
	if appCfg.SubmissionRetention < 0 {
		return fmt.Errorf("submission_retention must not be negative")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
		logger.Warn("session_key is the development default; set RIGHTONREPAIR_SESSION_KEY in production")
	}
	return nil
}

// validateBaseURL accepts a blank value or an absolute http(s) URL without
// a query or fragment.
func validateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL, got %q", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("base_url must not carry a query or fragment")
	}
	return nil
}
