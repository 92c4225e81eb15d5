// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// The struct is passed to most lifecycle hooks, so any configuration needed
// during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Flash cookie configuration
	SessionKey    string        // Secret key for signing the flash cookie (must be strong in production)
	SessionName   string        // Flash cookie name (default: rightonrepair-flash)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Reserved for a future visitor session; flash cookies live 10 minutes

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Media storage configuration (team photos, post images, logo)
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/uploads")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageCFURL       string
	StorageCFKeyPairID string
	StorageCFKeyPath   string

	// Email/SMTP configuration for office notifications
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	NotifyEmail  string // Office inbox for lead and ticket notifications (blank disables)

	// Public base URL for canonical links, the sitemap and emails.
	// Blank derives it from the request.
	BaseURL string

	// Content
	SeedContent bool          // Seed the starter catalog when collections are empty
	NavCacheTTL time.Duration // Navigation cache lifetime (0 disables caching)

	// Public form throttling (Mongo-backed, per client IP and form)
	FormRateLimitEnabled  bool
	FormRateLimitAttempts int
	FormRateLimitWindow   time.Duration
	FormRateLimitLockout  time.Duration

	// Ticket lookup throttling (in memory, per client IP)
	TicketLookupsPerMinute int

	// Housekeeping
	SubmissionRetention time.Duration // Delete contact submissions older than this (0 keeps them)

	// Observability
	MetricsEnabled bool // Expose Prometheus metrics at /metrics
}
