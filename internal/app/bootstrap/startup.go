// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/rightonrepair/internal/app/resources"
	"github.com/dalemusser/rightonrepair/internal/app/store/ratelimit"
	submissionstore "github.com/dalemusser/rightonrepair/internal/app/store/submissions"
	"github.com/dalemusser/rightonrepair/internal/app/system/metrics"
	"github.com/dalemusser/rightonrepair/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It registers the shared templates, creates the metrics collector and
// starts the background task runner.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	metricsRegistry = prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics = metrics.NewCollector(metricsRegistry)

	startTaskRunner(deps.MongoDatabase, appCfg, logger)
	return nil
}

var (
	// taskRunner is the global task runner instance, used for graceful shutdown.
	taskRunner *tasks.Runner

	// metricsRegistry backs /metrics; appMetrics records into it.
	metricsRegistry *prometheus.Registry
	appMetrics      *metrics.Collector
)

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(db *mongo.Database, appCfg AppConfig, logger *zap.Logger) {
	taskRunner = tasks.New(logger)
	taskRunner.OnResult(appMetrics.RecordJob)

	if appCfg.SubmissionRetention > 0 {
		taskRunner.Register(tasks.SubmissionRetentionJob(submissionstore.New(db), appCfg.SubmissionRetention, logger))
	}
	if appCfg.FormRateLimitEnabled {
		idle := appCfg.FormRateLimitWindow + appCfg.FormRateLimitLockout
		taskRunner.Register(tasks.RateLimitCleanupJob(formLimitStore(db, appCfg), idle, logger))
	}

	if taskRunner.Len() == 0 {
		logger.Info("no background jobs configured")
	}
	taskRunner.Start()
}

// formLimitStore builds the form rate limit store from config.
func formLimitStore(db *mongo.Database, appCfg AppConfig) *ratelimit.Store {
	return ratelimit.New(db,
		appCfg.FormRateLimitAttempts,
		appCfg.FormRateLimitWindow,
		appCfg.FormRateLimitLockout,
	)
}
