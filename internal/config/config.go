// Package config загружает конфигурацию сервиса из TOML-файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server    Server    `toml:"server"`
	Database  Database  `toml:"database"`
	Logs      Logs      `toml:"logs"`
	Metrics   Metrics   `toml:"metrics"`
	Redis     Redis     `toml:"redis"`
	Line      Line      `toml:"line"`
	SMTP      SMTP      `toml:"smtp"`
	Reminders Reminders `toml:"reminders"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"ssl_mode"`

	MaxOpenConns    int `toml:"max_open_conns"`
	MaxIdleConns    int `toml:"max_idle_conns"`
	ConnMaxLifetime int `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`  // "stdout", "stderr" или путь к файлу
	Level string `toml:"level"` // debug, info, warn, error
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Redis настройки подключения к Redis (дедупликация напоминаний)
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Line настройки LINE Messaging API
type Line struct {
	Enabled           bool    `toml:"enabled"`
	BaseURL           string  `toml:"base_url"`
	ChannelToken      string  `toml:"channel_token"`
	Timeout           int     `toml:"timeout"` // секунды
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// SMTP настройки отправки писем
type SMTP struct {
	Enabled bool   `toml:"enabled"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	From    string `toml:"from"`
}

// Reminders настройки воркера напоминаний
type Reminders struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron-выражение, например "0 18 * * *"
}

// Load читает и парсит конфигурацию из файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive, got %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	if c.Reminders.Enabled && c.Reminders.Schedule == "" {
		return fmt.Errorf("reminders.schedule is required when reminders are enabled")
	}
	if c.Line.Enabled && c.Line.ChannelToken == "" {
		return fmt.Errorf("line.channel_token is required when LINE is enabled")
	}
	return nil
}
