// Package config resuelve la configuración del servidor: flags, variables de
// entorno (PORT, DB_DSN, LOG_LEVEL, LOG_FORMAT, APP_NAME, ...) y archivos .env.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyPort         = "port"
	KeyDBDSN        = "db-dsn"
	KeyLogLevel     = "log-level"
	KeyLogFormat    = "log-format"
	KeyAppName      = "app-name"
	KeyReadTimeout  = "read-timeout"
	KeyWriteTimeout = "write-timeout"
)

type Config struct {
	Port         int
	DBDSN        string // vacío => in-memory
	LogLevel     string
	LogFormat    string
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RegisterFlags declara los flags con sus defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int(KeyPort, 8080, "HTTP port")
	fs.String(KeyDBDSN, "", "Postgres DSN; empty uses the in-memory store")
	fs.String(KeyLogLevel, "info", "log level (debug, info, warn, error)")
	fs.String(KeyLogFormat, "text", "log format (text, json)")
	fs.String(KeyAppName, "petclinic", "application name added to every log line")
	fs.Duration(KeyReadTimeout, 5*time.Second, "HTTP read timeout")
	fs.Duration(KeyWriteTimeout, 10*time.Second, "HTTP write timeout")
}

// LoadEnvFiles carga .env y .env.local si existen (no pisan el entorno real).
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load lee la configuración de v. Cada flag puede venir también por env
// con el nombre en mayúsculas y "_" (db-dsn -> DB_DSN).
func Load(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Port:         v.GetInt(KeyPort),
		DBDSN:        strings.TrimSpace(v.GetString(KeyDBDSN)),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		AppName:      v.GetString(KeyAppName),
		ReadTimeout:  v.GetDuration(KeyReadTimeout),
		WriteTimeout: v.GetDuration(KeyWriteTimeout),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("config: timeouts must be positive")
	}
	return nil
}
