// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	blogfeature "github.com/dalemusser/rightonrepair/internal/app/features/blog"
	contactfeature "github.com/dalemusser/rightonrepair/internal/app/features/contact"
	errorsfeature "github.com/dalemusser/rightonrepair/internal/app/features/errors"
	healthfeature "github.com/dalemusser/rightonrepair/internal/app/features/health"
	homefeature "github.com/dalemusser/rightonrepair/internal/app/features/home"
	industriesfeature "github.com/dalemusser/rightonrepair/internal/app/features/industries"
	pagesfeature "github.com/dalemusser/rightonrepair/internal/app/features/pages"
	seofeature "github.com/dalemusser/rightonrepair/internal/app/features/seo"
	servicesfeature "github.com/dalemusser/rightonrepair/internal/app/features/services"
	supportfeature "github.com/dalemusser/rightonrepair/internal/app/features/support"
	appresources "github.com/dalemusser/rightonrepair/internal/app/resources"
	categorystore "github.com/dalemusser/rightonrepair/internal/app/store/categories"
	contentstore "github.com/dalemusser/rightonrepair/internal/app/store/content"
	industrystore "github.com/dalemusser/rightonrepair/internal/app/store/industries"
	pagestore "github.com/dalemusser/rightonrepair/internal/app/store/pages"
	poststore "github.com/dalemusser/rightonrepair/internal/app/store/posts"
	servicestore "github.com/dalemusser/rightonrepair/internal/app/store/services"
	settingsstore "github.com/dalemusser/rightonrepair/internal/app/store/settings"
	submissionstore "github.com/dalemusser/rightonrepair/internal/app/store/submissions"
	teamstore "github.com/dalemusser/rightonrepair/internal/app/store/team"
	testimonialstore "github.com/dalemusser/rightonrepair/internal/app/store/testimonials"
	ticketstore "github.com/dalemusser/rightonrepair/internal/app/store/tickets"
	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/app/system/flash"
	"github.com/dalemusser/rightonrepair/internal/app/system/formguard"
	"github.com/dalemusser/rightonrepair/internal/app/system/metrics"
	"github.com/dalemusser/rightonrepair/internal/app/system/navigation"
	"github.com/dalemusser/rightonrepair/internal/app/system/sitectx"
	"github.com/dalemusser/rightonrepair/internal/app/system/throttle"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// lookupLimiter throttles ticket lookups; stopped in Shutdown.
var lookupLimiter *throttle.Limiter

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Every public page runs behind the site context middleware, which loads
// settings, shared content and navigation once per request.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Flash messages ride in a signed cookie across post/redirect/get.
	flashes, err := flash.New(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("flash store init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)

	db := deps.MongoDatabase
	services := servicestore.New(db)
	industries := industrystore.New(db)
	posts := poststore.New(db)
	content := contentstore.New(db)

	resolver := catalog.New(services, industries, appMetrics, logger)
	nav := navigation.NewBuilder(resolver, appCfg.NavCacheTTL, logger)
	site := sitectx.NewLoader(settingsstore.New(db), content, nav, deps.FileStorage, appCfg.BaseURL, logger)

	// Form throttling is persisted so it holds across instances (nil if disabled).
	var guard *formguard.Guard
	if appCfg.FormRateLimitEnabled {
		guard = formguard.New(formLimitStore(db, appCfg), logger)
	}
	lookupLimiter = throttle.New(throttle.PerMinute(appCfg.TicketLookupsPerMinute))

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	if appCfg.MetricsEnabled {
		r.Use(appMetrics.Middleware)
	}

	// CSRF protection for the public forms.
	// Cookie name is "rightonrepair_csrf" to avoid collisions with other
	// services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("rightonrepair_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "Your session expired. Please reload the page and try again.", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// ─────────────────────────────────────────────────────────────────────────────
	// Infrastructure routes (no site context)
	// ─────────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(healthfeature.MongoPinger(deps.MongoClient), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	if appCfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler(metricsRegistry))
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	// /static/* serves files from disk (static directory)
	r.Handle("/static/*", fileserver.Handler("/static", "static"))

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Uploaded media (local storage only)
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// ─────────────────────────────────────────────────────────────────────────────
	// Public site
	// ─────────────────────────────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(site.Middleware)

		homeHandler := homefeature.NewHandler(resolver, testimonialstore.New(db), content, logger)
		homefeature.Routes(r, homeHandler)

		pagesHandler := pagesfeature.NewHandler(pagestore.New(db), teamstore.New(db), content, deps.FileStorage, errLog, logger)
		pagesfeature.Routes(r, pagesHandler)

		servicesHandler := servicesfeature.NewHandler(resolver, content, errLog, logger)
		r.Mount("/services", servicesfeature.Routes(servicesHandler))

		industriesHandler := industriesfeature.NewHandler(resolver, content, errLog, logger)
		r.Mount("/industries", industriesfeature.Routes(industriesHandler))

		blogHandler := blogfeature.NewHandler(posts, categorystore.New(db), deps.FileStorage, errLog, logger)
		r.Mount("/blog", blogfeature.Routes(blogHandler))

		contactHandler := contactfeature.NewHandler(
			submissionstore.New(db),
			guard,
			deps.Mailer,
			appCfg.NotifyEmail,
			flashes,
			appMetrics,
			logger,
		)
		contactfeature.Routes(r, contactHandler)

		supportHandler := supportfeature.NewHandler(
			ticketstore.New(db),
			flashes,
			supportfeature.Options{
				Guard:    guard,
				Lookups:  lookupLimiter,
				Notifier: deps.Mailer,
				NotifyTo: appCfg.NotifyEmail,
				Metrics:  appMetrics,
			},
			errLog,
			logger,
		)
		supportfeature.Routes(r, supportHandler)

		seofeature.Routes(r, seofeature.NewHandler(services, industries, posts, logger))

		// 404 catch-all for unmatched routes; inherits the site context
		r.NotFound(errorsfeature.NotFound)
		r.MethodNotAllowed(errorsfeature.MethodNotAllowed)
	})

	return r, nil
}
