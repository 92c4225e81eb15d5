// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through DB setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "rightonrepair", // used only for logging/diagnostics
	LoadConfig:     LoadConfig,      // load core + app config
	ValidateConfig: ValidateConfig,  // validate MongoDB URI, base URL and throttling
	ConnectDB:      ConnectDB,       // connect to MongoDB, media storage and SMTP
	EnsureSchema:   EnsureSchema,    // validators, indexes, seed data
	Startup:        Startup,         // shared templates, metrics, background tasks
	BuildHandler:   BuildHandler,    // build the HTTP router + middleware stack
	Shutdown:       Shutdown,        // stop tasks and limiters, disconnect MongoDB
}
