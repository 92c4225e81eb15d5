// Package sitectx carries the per-request site state (settings, footer
// content, navigation, CSP nonce, base URL) through the request context.
//
// The Loader middleware resolves everything once per request; view-model
// builders read it with From. Nothing here is cached across requests except
// what the navigation builder itself chooses to cache.
package sitectx

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/rightonrepair/internal/app/system/navigation"
	"github.com/dalemusser/rightonrepair/internal/app/system/timeouts"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Site is the request-scoped view of the site.
type Site struct {
	Settings  models.SiteSettings
	Footer    models.PageContent
	Nav       navigation.Model
	Nonce     string
	RequestID string
	BaseURL   string
	LogoURL   string
}

// Default returns the Site used when the Loader has not run, for example in
// handler tests or error pages rendered outside the middleware chain.
func Default() *Site {
	return &Site{
		Settings: models.DefaultSiteSettings(),
		Footer:   models.PageContent{},
		Nav:      navigation.Empty(),
	}
}

// AbsURL joins path onto the base URL.
func (s *Site) AbsURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.BaseURL + path
}

type ctxKey struct{}

// With returns a copy of ctx carrying site.
func With(ctx context.Context, site *Site) context.Context {
	return context.WithValue(ctx, ctxKey{}, site)
}

// From returns the Site stored in ctx, or Default when none is present.
func From(ctx context.Context) *Site {
	if s, ok := ctx.Value(ctxKey{}).(*Site); ok && s != nil {
		return s
	}
	return Default()
}

// WithRequest returns r carrying site. Used by tests to inject settings.
func WithRequest(r *http.Request, site *Site) *http.Request {
	return r.WithContext(With(r.Context(), site))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Loader middleware                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// SettingsSource loads the key/value site settings over the defaults.
type SettingsSource interface {
	Load(ctx context.Context) (models.SiteSettings, error)
}

// ContentSource loads the content blocks of one page.
type ContentSource interface {
	GetPage(ctx context.Context, page string) (models.PageContent, error)
}

// NavSource assembles the navigation model.
type NavSource interface {
	Build(ctx context.Context) navigation.Model
}

// Loader resolves the Site for each request.
type Loader struct {
	settings SettingsSource
	content  ContentSource
	nav      NavSource
	media    storage.Store
	baseURL  string
	logger   *zap.Logger
}

// NewLoader creates a Loader. baseURL may be empty, in which case it is
// derived from the request host. media may be nil.
func NewLoader(settings SettingsSource, content ContentSource, nav NavSource, media storage.Store, baseURL string, logger *zap.Logger) *Loader {
	return &Loader{
		settings: settings,
		content:  content,
		nav:      nav,
		media:    media,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

// Middleware loads the Site, sets the request ID and security headers,
// and stores the Site in the request context.
func (l *Loader) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site := l.Load(r)

		w.Header().Set("X-Request-ID", site.RequestID)
		SetSecurityHeaders(w, site.Nonce, l.secure(r))

		next.ServeHTTP(w, WithRequest(r, site))
	})
}

// Load builds the Site for r. Store failures fall back to defaults.
func (l *Loader) Load(r *http.Request) *Site {
	site := Default()
	site.Nonce = NewNonce()
	site.RequestID = requestID(r)
	site.BaseURL = l.resolveBaseURL(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page, l.logger, "site context")
	defer cancel()

	if l.settings != nil {
		settings, err := l.settings.Load(ctx)
		if err != nil {
			l.logger.Warn("site settings load failed; using defaults", zap.Error(err))
		} else {
			site.Settings = settings
		}
	}
	if l.content != nil {
		footer, err := l.content.GetPage(ctx, models.ContentPageFooter)
		if err != nil {
			l.logger.Warn("footer content load failed", zap.Error(err))
		} else if footer != nil {
			site.Footer = footer
		}
	}
	if l.nav != nil {
		site.Nav = l.nav.Build(ctx)
	}
	if site.Settings.HasLogo() && l.media != nil {
		site.LogoURL = l.media.URL(site.Settings.LogoPath)
	}

	return site
}

func (l *Loader) resolveBaseURL(r *http.Request) string {
	if l.baseURL != "" {
		return l.baseURL
	}
	scheme := "http"
	if l.secure(r) {
		scheme = "https"
	}
	host := r.Host
	if host == "" {
		host = "localhost"
	}
	return scheme + "://" + host
}

func (l *Loader) secure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		return true
	}
	return strings.HasPrefix(l.baseURL, "https://")
}

/*─────────────────────────────────────────────────────────────────────────────*
| Nonce, request ID, headers                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// NewNonce returns a URL-safe random nonce for the Content-Security-Policy.
func NewNonce() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{8,64}$`)

// requestID honours a well-formed incoming X-Request-ID, otherwise mints one.
func requestID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Request-ID")); validRequestID.MatchString(id) {
		return id
	}
	return uuid.NewString()
}

// ContentSecurityPolicy returns the policy for pages rendered with nonce.
func ContentSecurityPolicy(nonce string, upgrade bool) string {
	var b strings.Builder
	b.WriteString("default-src 'self'; ")
	b.WriteString("script-src 'self' 'nonce-" + nonce + "' https://cdn.jsdelivr.net https://cdnjs.cloudflare.com; ")
	b.WriteString("style-src 'self' 'unsafe-inline' https://fonts.googleapis.com https://cdn.jsdelivr.net https://cdnjs.cloudflare.com; ")
	b.WriteString("img-src 'self' data: https:; ")
	b.WriteString("font-src 'self' data: https://fonts.gstatic.com https://cdnjs.cloudflare.com; ")
	b.WriteString("connect-src 'self'; ")
	b.WriteString("frame-ancestors 'none'; base-uri 'self'; form-action 'self';")
	if upgrade {
		b.WriteString(" upgrade-insecure-requests;")
	}
	return b.String()
}

// SetSecurityHeaders writes the CSP and the cross-origin isolation headers.
func SetSecurityHeaders(w http.ResponseWriter, nonce string, secure bool) {
	h := w.Header()
	h.Set("Content-Security-Policy", ContentSecurityPolicy(nonce, secure))
	h.Set("Cross-Origin-Resource-Policy", "same-origin")
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("X-Permitted-Cross-Domain-Policies", "none")
	h.Set("Origin-Agent-Cluster", "?1")
	h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=(), usb=(), magnetometer=(), gyroscope=(), accelerometer=()")
}
