package config

import (
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// ProCatConfig holds the full service configuration. It is loaded once from
// a TOML file, with secrets overridable from the environment.
type ProCatConfig struct {
	Server   ServerConfig   `toml:"server"`
	DB       DBConfig       `toml:"db"`
	Worker   WorkerConfig   `toml:"worker"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Clockify ClockifyConfig `toml:"clockify"`
}

type ServerConfig struct {
	Addr       string `toml:"addr"`
	HandleCORS bool   `toml:"handle_cors"`
	CORSOrigin string `toml:"cors_origin"`
}

type DBConfig struct {
	DSN string `toml:"dsn"`
}

type WorkerConfig struct {
	PollInterval duration `toml:"poll_interval"`
	Concurrency  int      `toml:"concurrency"`
	MaxAttempts  int      `toml:"max_attempts"`
	Lease        duration `toml:"lease"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	From     string `toml:"from"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type ClockifyConfig struct {
	ReportsURL  string `toml:"reports_url"`
	APIKey      string `toml:"api_key"`
	WorkspaceID string `toml:"workspace_id"`
}

// duration lets TOML carry values like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

var (
	cfg  *ProCatConfig
	once sync.Once
)

func defaults() *ProCatConfig {
	return &ProCatConfig{
		Server: ServerConfig{
			Addr:       ":8080",
			CORSOrigin: "http://localhost:8190",
		},
		DB: DBConfig{
			DSN: "postgres://localhost:5432/procat",
		},
		Worker: WorkerConfig{
			PollInterval: duration{5 * time.Second},
			Concurrency:  2,
			MaxAttempts:  3,
			Lease:        duration{10 * time.Minute},
		},
		SMTP: SMTPConfig{
			Port: 587,
			From: "procat@example.ac.uk",
		},
		Clockify: ClockifyConfig{
			ReportsURL: "https://reports.api.clockify.me/v1",
		},
	}
}

// Load parses the given TOML file into the process-wide configuration.
// A missing path leaves the defaults in place. Environment variables
// PROCAT_DB_DSN, PROCAT_SMTP_PASSWORD and PROCAT_CLOCKIFY_API_KEY override
// the corresponding file values.
func Load(path string) error {
	c := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			return err
		}
	}
	applyEnv(c)
	cfg = c
	return nil
}

func applyEnv(c *ProCatConfig) {
	if dsn := os.Getenv("PROCAT_DB_DSN"); dsn != "" {
		c.DB.DSN = dsn
	}
	if pw := os.Getenv("PROCAT_SMTP_PASSWORD"); pw != "" {
		c.SMTP.Password = pw
	}
	if key := os.Getenv("PROCAT_CLOCKIFY_API_KEY"); key != "" {
		c.Clockify.APIKey = key
	}
}

// Config returns the process-wide configuration, loading defaults if Load
// was never called.
func Config() *ProCatConfig {
	once.Do(func() {
		if cfg == nil {
			c := defaults()
			applyEnv(c)
			cfg = c
		}
	})
	return cfg
}
