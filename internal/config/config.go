package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Database  DatabaseConfig  `toml:"database"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Business  BusinessConfig  `toml:"business"`
	Reminders RemindersConfig `toml:"reminders"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BusinessConfig бизнес-настройки салона
type BusinessConfig struct {
	// Timezone IANA таймзона салона, в ней принимаются все решения
	// "прошло ли время" (например "America/Sao_Paulo")
	Timezone string `toml:"timezone"`
}

// RemindersConfig настройки WhatsApp напоминаний (Twilio)
type RemindersConfig struct {
	Enabled    bool   `toml:"enabled"`
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"` // формат whatsapp:+5511999999999
	Schedule   string `toml:"schedule"`    // cron выражение, например "0 18 * * *"
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Business.Timezone == "" {
		return nil, fmt.Errorf("config: business.timezone is required")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Reminders.Enabled {
		if cfg.Reminders.AccountSID == "" || cfg.Reminders.AuthToken == "" || cfg.Reminders.FromNumber == "" {
			return nil, fmt.Errorf("config: reminders enabled but twilio credentials are not set")
		}
		if cfg.Reminders.Schedule == "" {
			cfg.Reminders.Schedule = "0 18 * * *"
		}
	}

	return &cfg, nil
}
