package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-StaffService/internal/domain"
	"github.com/m04kA/SMC-StaffService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	ServiceCatalog ServiceCatalogConfig `toml:"service_catalog"`
	StaffDefaults  StaffDefaultsConfig  `toml:"staff_defaults"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ServiceCatalogConfig настройки клиента модуля услуг
type ServiceCatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// StaffDefaultsConfig значения по умолчанию для модуля персонала.
// Заменяет глобальный singleton оригинального модуля: значения передаются
// сервисам явно как domain.StaffDefaults.
type StaffDefaultsConfig struct {
	DefaultWorkStart           string `toml:"default_work_start"`
	DefaultWorkEnd             string `toml:"default_work_end"`
	DefaultBreakMinutes        int    `toml:"default_break_minutes"`
	DefaultSlotDurationMinutes int    `toml:"default_slot_duration_minutes"`
	DefaultSlotIntervalMinutes int    `toml:"default_slot_interval_minutes"`
	MinAdvanceBookingHours     int    `toml:"min_advance_booking_hours"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: validate %s: %w", path, err)
	}

	return &cfg, nil
}

// ToStaffDefaults конвертирует секцию [staff_defaults] в доменный value object
func (c *Config) ToStaffDefaults() (domain.StaffDefaults, error) {
	defaults := domain.NewStaffDefaults()

	if c.StaffDefaults.DefaultWorkStart != "" {
		start, err := types.NewTimeStringFromString(c.StaffDefaults.DefaultWorkStart)
		if err != nil {
			return defaults, fmt.Errorf("config: default_work_start: %w", err)
		}
		defaults.DefaultWorkStart = start
	}
	if c.StaffDefaults.DefaultWorkEnd != "" {
		end, err := types.NewTimeStringFromString(c.StaffDefaults.DefaultWorkEnd)
		if err != nil {
			return defaults, fmt.Errorf("config: default_work_end: %w", err)
		}
		defaults.DefaultWorkEnd = end
	}
	if c.StaffDefaults.DefaultBreakMinutes > 0 {
		defaults.DefaultBreakMinutes = c.StaffDefaults.DefaultBreakMinutes
	}
	if c.StaffDefaults.DefaultSlotDurationMinutes > 0 {
		defaults.DefaultSlotDurationMinutes = c.StaffDefaults.DefaultSlotDurationMinutes
	}
	if c.StaffDefaults.DefaultSlotIntervalMinutes > 0 {
		defaults.DefaultSlotIntervalMinutes = c.StaffDefaults.DefaultSlotIntervalMinutes
	}
	if c.StaffDefaults.MinAdvanceBookingHours > 0 {
		defaults.MinAdvanceBookingHours = c.StaffDefaults.MinAdvanceBookingHours
	}

	if !defaults.DefaultWorkStart.IsBefore(defaults.DefaultWorkEnd) {
		return defaults, fmt.Errorf("config: default_work_start must be before default_work_end")
	}

	return defaults, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "staff-service"
	}
	if cfg.ServiceCatalog.Timeout == 0 {
		cfg.ServiceCatalog.Timeout = 5
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	return nil
}
