package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("Database.Driver = %q, want sqlite3", cfg.Database.Driver)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
  read_timeout: 5s
database:
  driver: sqlite3
  dsn: "file::memory:?cache=shared"
  max_open_conns: 10
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout.Std() != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout.Std())
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("Database.MaxOpenConns = %d, want 10", cfg.Database.MaxOpenConns)
	}
	// Unset fields keep defaults.
	if cfg.Database.MaxIdleConns != 5 {
		t.Errorf("Database.MaxIdleConns = %d, want default 5", cfg.Database.MaxIdleConns)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TODOD_ADDR", ":7070")
	t.Setenv("TODOD_DB_DSN", "file:other.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want :7070", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "file:other.db" {
		t.Errorf("Database.DSN = %q, want file:other.db", cfg.Database.DSN)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"zero concurrency", func(c *Config) { c.Server.Concurrency = 0 }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }, true},
		{"zero open conns", func(c *Config) { c.Database.MaxOpenConns = 0 }, true},
		{"idle exceeds open", func(c *Config) { c.Database.MaxIdleConns = 100 }, true},
		{"negative lifetime", func(c *Config) { c.Database.ConnMaxLifetime = -1 }, true},
		{"postgres driver", func(c *Config) { c.Database.Driver = "postgres" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
