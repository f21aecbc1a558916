package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Log
		Database
		UI
		Security
		Session
		Tasks
		Audit
		Maintenance
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		Env                      string // "development" enables console logging
	}
	Log struct {
		Level string
	}
	Database struct {
		Driver string // "sqlite" (default) or "postgres"
		Path   string // sqlite file path
		DSN    string // postgres connection string
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Security struct {
		CSRFEnabled   bool
		CSRFSecret    string
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	Session struct {
		Lifetime time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Audit struct {
		RetentionDays   int
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Maintenance struct {
		ReadOnly              bool
		OverdueReportSchedule string // Cron format
	}
)

func NewConfig() *Config {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("app_env", "production")
	v.SetDefault("log_level", "info")
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "") // Auto-generated if empty
	v.SetDefault("secure_cookies", true)
	v.SetDefault("session_lifetime", "24h")

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("audit_retention_days", 90)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")
	v.SetDefault("read_only", false)
	v.SetDefault("overdue_report_schedule", "0 8 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			Env:                      v.GetString("APP_ENV"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
		},
		Database: Database{
			Driver: v.GetString("DATABASE_DRIVER"),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Security: Security{
			CSRFEnabled:   v.GetBool("CSRF_ENABLED"),
			CSRFSecret:    v.GetString("CSRF_SECRET"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Session: Session{
			Lifetime: v.GetDuration("SESSION_LIFETIME"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Maintenance: Maintenance{
			ReadOnly:              v.GetBool("READ_ONLY"),
			OverdueReportSchedule: v.GetString("OVERDUE_REPORT_SCHEDULE"),
		},
	}
}

// IsDevelopment reports whether the app runs in a local development environment.
func (c *Config) IsDevelopment() bool {
	return c.Global.Env == "development"
}
