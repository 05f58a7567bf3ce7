// Package config loads service configuration from a YAML file with
// environment variable overrides. A missing file is not an error; the
// defaults describe a standalone sqlite-backed instance.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "10s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	// Concurrency caps in-flight requests served by fasthttp.
	Concurrency int `yaml:"concurrency"`
}

// DatabaseConfig configures the connection pool.
type DatabaseConfig struct {
	Driver          string   `yaml:"driver"`
	DSN             string   `yaml:"dsn"`
	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime Duration `yaml:"conn_max_idle_time"`
}

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

// Default returns the configuration used when no file and no overrides
// are present. The sqlite DSN carries _busy_timeout because sqlite
// serializes writers process-wide; concurrent writers queue rather than
// fail with SQLITE_BUSY.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(10 * time.Second),
			Concurrency:  1000,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite3",
			DSN:             "file:todos.db?cache=shared&_busy_timeout=5000",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration(5 * time.Minute),
			ConnMaxIdleTime: Duration(10 * time.Minute),
		},
	}
}

// Load reads the YAML file at path (if it exists), applies environment
// overrides and validates the result. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv applies TODOD_* environment overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("TODOD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TODOD_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("TODOD_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
}

// Validate fails fast on configuration that would only surface as a
// runtime error later.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Server.Concurrency <= 0 {
		return fmt.Errorf("server.concurrency must be positive")
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite3 or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn cannot be empty")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns cannot exceed database.max_open_conns")
	}
	if c.Database.ConnMaxLifetime < 0 {
		return fmt.Errorf("database.conn_max_lifetime cannot be negative")
	}
	if c.Database.ConnMaxIdleTime < 0 {
		return fmt.Errorf("database.conn_max_idle_time cannot be negative")
	}
	return nil
}
