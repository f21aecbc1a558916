package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ssssstella/locallibrary/internal/audit"
	"github.com/ssssstella/locallibrary/internal/config"
	"github.com/ssssstella/locallibrary/internal/database"
	auditrepo "github.com/ssssstella/locallibrary/internal/database/audit"
	"github.com/ssssstella/locallibrary/internal/database/bookinstances"
	"github.com/ssssstella/locallibrary/internal/database/books"
	http_controllers "github.com/ssssstella/locallibrary/internal/http"
	"github.com/ssssstella/locallibrary/internal/logging"
	"github.com/ssssstella/locallibrary/internal/maintenance"
	"github.com/ssssstella/locallibrary/internal/scheduler"
	"github.com/ssssstella/locallibrary/internal/security"
	"github.com/ssssstella/locallibrary/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}

	// Background work stops after the last request has drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info().Msg("Server exiting")
}

// csrfSecret returns the configured CSRF key, generating one when unset.
// Generated keys do not survive restarts, so open forms become invalid.
func csrfSecret(cfg config.Security) ([]byte, error) {
	if !cfg.CSRFEnabled {
		return nil, nil
	}
	if cfg.CSRFSecret != "" {
		return security.DecodeSecret(cfg.CSRFSecret), nil
	}
	secret, err := security.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("generate CSRF secret: %w", err)
	}
	log.Warn().Msg("Generated CSRF secret (set CSRF_SECRET to persist)")
	return security.DecodeSecret(secret), nil
}

func Run(cfg *config.Config, version string) {
	logging.Init(cfg.Global.Env, cfg.Log.Level)
	log.Info().Str("version", version).Str("env", cfg.Global.Env).Msg("Starting locallibrary")

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	instances := bookinstances.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	// Sessions live next to the catalog when it is a sqlite file.
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get SQL DB for sessions")
	}
	if !db.IsSQLite() {
		sqlDB = nil
	}
	sessionManager, err := security.NewSessionManager(sqlDB, cfg.Session, cfg.Security.SecureCookies)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session manager")
	}

	secret, err := csrfSecret(cfg.Security)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up CSRF protection")
	}

	readOnly := maintenance.NewMiddleware(cfg.Maintenance.ReadOnly)
	if readOnly.IsEnabled() {
		log.Warn().Msg("Read-only mode enabled - write operations will be blocked")
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var maintenanceScheduler *scheduler.MaintenanceScheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing task client")
			}
		}()

		taskClient.Register(
			tasks.NewCleanupAuditEventsQueue(auditService),
			tasks.NewOverdueReportQueue(instances),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		maintenanceScheduler = scheduler.NewMaintenanceScheduler(taskClient, scheduler.MaintenanceConfig{
			AuditCleanupSchedule:  cfg.Audit.CleanupSchedule,
			AuditRetentionDays:    cfg.Audit.RetentionDays,
			OverdueReportSchedule: cfg.Maintenance.OverdueReportSchedule,
		})
		if err := maintenanceScheduler.Start(taskCtx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start maintenance scheduler")
		}
	} else {
		log.Info().Msg("Background tasks disabled")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:          db,
		BookInstanceStore: instances,
		BookTitleLister:   bookRepo,
		Auditor:           auditService,
		AuditReader:       auditService,
		TemplatesPath:     cfg.UI.TemplatesPath,
		StaticPath:        cfg.UI.StaticPath,
		CSRFSecret:        secret,
		SecureCookies:     cfg.Security.SecureCookies,
		SessionManager:    sessionManager,
		ReadOnly:          readOnly,
		ShowErrorDetails:  cfg.IsDevelopment(),
		Version:           version,
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenanceScheduler != nil {
			maintenanceScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		auditService.Wait()
	}

	Serve(router, cfg, onShutdown)
}
