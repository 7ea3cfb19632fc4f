package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	PubSub    PubSubConfig
	Push      PushConfig
	Reminder  ReminderConfig
	Scheduler SchedulerConfig
	Service   ServiceConfig
}

type LogConfig struct {
	Level string
}

type ServiceConfig struct {
	Name        string
	Environment string
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type PubSubConfig struct {
	NatsURL         string
	GCloudProjectID string
}

type PushConfig struct {
	// CredentialsFile empty means application default credentials; with no
	// project configured either, pushes are only logged.
	CredentialsFile string
	ProjectID       string
}

type ReminderConfig struct {
	LinkBaseURL     string
	Concurrency     int
	DefaultTimezone *time.Location
	CronSecret      string
}

type SchedulerConfig struct {
	Enabled bool
	Spec    string
}

func Load() (*Config, error) {
	serverPort, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("SERVER_READ_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("SERVER_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	database, err := loadDatabase()
	if err != nil {
		return nil, err
	}

	reminder, err := loadReminder()
	if err != nil {
		return nil, err
	}

	schedulerEnabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_ENABLED: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         serverPort,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: database,
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		PubSub: PubSubConfig{
			NatsURL:         os.Getenv("NATS_URL"),
			GCloudProjectID: getEnv("GCLOUD_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		},
		Push: PushConfig{
			CredentialsFile: os.Getenv("FCM_CREDENTIALS_FILE"),
			ProjectID:       os.Getenv("FCM_PROJECT_ID"),
		},
		Reminder: reminder,
		Scheduler: SchedulerConfig{
			Enabled: schedulerEnabled,
			Spec:    getEnv("SCHEDULER_SPEC", "0 * * * * *"),
		},
		Service: ServiceConfig{
			Name:        getEnv("K_SERVICE", "task-reminder"),
			Environment: getEnv("ENV", "local"),
		},
	}, nil
}

func loadDatabase() (DatabaseConfig, error) {
	maxOpenConns, err := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "25"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
	}

	maxIdleConns, err := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "25"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "5m"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	cfg := DatabaseConfig{
		Driver:          getEnv("DATABASE_DRIVER", DriverPostgres),
		DSN:             os.Getenv("POSTGRES_DSN"),
		SQLitePath:      getEnv("SQLITE_PATH", "task-reminder.db"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: connMaxLifetime,
		AutoMigrate:     autoMigrate,
	}

	switch cfg.Driver {
	case DriverPostgres:
		if cfg.DSN == "" {
			return DatabaseConfig{}, errors.New("POSTGRES_DSN environment variable is required")
		}
	case DriverSQLite:
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DATABASE_DRIVER %q: must be postgres or sqlite", cfg.Driver)
	}

	return cfg, nil
}

func loadReminder() (ReminderConfig, error) {
	concurrency, err := strconv.Atoi(getEnv("REMINDER_CONCURRENCY", "8"))
	if err != nil {
		return ReminderConfig{}, fmt.Errorf("invalid REMINDER_CONCURRENCY: %w", err)
	}

	if concurrency < 1 {
		return ReminderConfig{}, fmt.Errorf("invalid REMINDER_CONCURRENCY: must be at least 1, got %d", concurrency)
	}

	tzName := getEnv("REMINDER_DEFAULT_TIMEZONE", "UTC")

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return ReminderConfig{}, fmt.Errorf("invalid REMINDER_DEFAULT_TIMEZONE: %w", err)
	}

	return ReminderConfig{
		LinkBaseURL:     getEnv("APP_BASE_URL", "http://localhost:3000"),
		Concurrency:     concurrency,
		DefaultTimezone: loc,
		CronSecret:      os.Getenv("CRON_SECRET"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FCMEnabled reports whether enough is configured to reach FCM.
func (c *PushConfig) FCMEnabled() bool {
	return c.CredentialsFile != "" || c.ProjectID != ""
}
