package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), newFlags(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.DBDSN != "" || cfg.LogLevel != "info" || cfg.AppName != "petclinic" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ReadTimeout != 5*time.Second || cfg.WriteTimeout != 10*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", " postgres://localhost/petclinic ")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(viper.New(), newFlags(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("expected port from env, got %d", cfg.Port)
	}
	if cfg.DBDSN != "postgres://localhost/petclinic" {
		t.Fatalf("expected trimmed dsn, got %q", cfg.DBDSN)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("expected json, got %q", cfg.LogFormat)
	}
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load(viper.New(), newFlags(t, "--port", "7070"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7070 {
		t.Fatalf("expected explicit flag to win, got %d", cfg.Port)
	}
}

func TestLoad_RejectsInvalidPort(t *testing.T) {
	if _, err := Load(viper.New(), newFlags(t, "--port", "0")); err == nil {
		t.Fatalf("expected error for port 0")
	}
}
