package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"book-loan-backend/internal/rules"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	LoanPolicy LoanPolicyConfig `yaml:"loan_policy"`
	Timezone   string           `yaml:"timezone"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	User                   string `yaml:"user"`
	Password               string `yaml:"password"`
	Database               string `yaml:"database"`
	SSLMode                string `yaml:"ssl_mode"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// LoanPolicyConfig contains the borrowing limits
type LoanPolicyConfig struct {
	LoanDays     int `yaml:"loan_days"`
	MaxOpenLoans int `yaml:"max_open_loans"`
	PenaltyDays  int `yaml:"penalty_days"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ReportOverdueBorrowings string `yaml:"report_overdue_borrowings"`
	ReportActivePenalties   string `yaml:"report_active_penalties"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Loan policy
	if val := os.Getenv("LOAN_DAYS"); val != "" {
		fmt.Sscanf(val, "%d", &c.LoanPolicy.LoanDays)
	}
	if val := os.Getenv("MAX_OPEN_LOANS"); val != "" {
		fmt.Sscanf(val, "%d", &c.LoanPolicy.MaxOpenLoans)
	}
	if val := os.Getenv("PENALTY_DAYS"); val != "" {
		fmt.Sscanf(val, "%d", &c.LoanPolicy.PenaltyDays)
	}

	if val := os.Getenv("TIMEZONE"); val != "" {
		c.Timezone = val
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetimeMinutes == 0 {
		c.Database.ConnMaxLifetimeMinutes = 30
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 10
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 10
	}

	if c.LoanPolicy.LoanDays == 0 {
		c.LoanPolicy.LoanDays = 7
	}
	if c.LoanPolicy.MaxOpenLoans == 0 {
		c.LoanPolicy.MaxOpenLoans = 2
	}
	if c.LoanPolicy.PenaltyDays == 0 {
		c.LoanPolicy.PenaltyDays = 2
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}

	if c.Scheduler.ReportOverdueBorrowings == "" {
		c.Scheduler.ReportOverdueBorrowings = "0 0 1 * * *" // 1 AM daily
	}
	if c.Scheduler.ReportActivePenalties == "" {
		c.Scheduler.ReportActivePenalties = "0 30 1 * * *" // 1:30 AM daily
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.LoanPolicy.LoanDays < 1 {
		return fmt.Errorf("loan days must be positive: %d", c.LoanPolicy.LoanDays)
	}
	if c.LoanPolicy.MaxOpenLoans < 1 {
		return fmt.Errorf("max open loans must be positive: %d", c.LoanPolicy.MaxOpenLoans)
	}
	if c.LoanPolicy.PenaltyDays < 0 {
		return fmt.Errorf("penalty days must not be negative: %d", c.LoanPolicy.PenaltyDays)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return c.connectionString(c.Database.Database)
}

// GetMaintenanceConnectionString points at the "postgres" database, for
// creating or dropping the application database.
func (c *Config) GetMaintenanceConnectionString() string {
	return c.connectionString("postgres")
}

func (c *Config) connectionString(database string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Location returns the time zone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Policy converts the configured limits into borrowing rules.
func (c LoanPolicyConfig) Policy() rules.Policy {
	return rules.Policy{
		LoanDays:     c.LoanDays,
		MaxOpenLoans: c.MaxOpenLoans,
		PenaltyDays:  c.PenaltyDays,
	}
}
