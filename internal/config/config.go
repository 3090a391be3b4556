package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Redis       RedisConfig       `toml:"redis"`
	Cache       CacheConfig       `toml:"cache"`
	UserService UserServiceConfig `toml:"user_service"`
	Auth        AuthConfig        `toml:"auth"`
	Export      ExportConfig      `toml:"export"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=1"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required,min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// MetricsConfig параметры prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
}

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"min=0"`
}

// CacheConfig параметры кэширования списков площадок
type CacheConfig struct {
	Enabled    bool   `toml:"enabled"`
	TTLSeconds int    `toml:"ttl_seconds" validate:"required_if=Enabled true,min=0"`
	KeyPrefix  string `toml:"key_prefix" validate:"required_if=Enabled true"`
}

// UserServiceConfig параметры интеграции с сервисом пользователей (таймаут в секундах)
type UserServiceConfig struct {
	URL        string `toml:"url" validate:"required,url"`
	Timeout    int    `toml:"timeout" validate:"min=1"`
	RetryCount int    `toml:"retry_count" validate:"min=0,max=10"`
}

// AuthConfig минимальные роли для просмотра и изменения вместимости
type AuthConfig struct {
	MinViewRole string `toml:"min_view_role" validate:"required"`
	MinEditRole string `toml:"min_edit_role" validate:"required"`
}

// ViewRole возвращает распарсенную минимальную роль для просмотра
func (a AuthConfig) ViewRole() domain.Role {
	role, _ := domain.ParseRole(a.MinViewRole)
	return role
}

// EditRole возвращает распарсенную минимальную роль для изменения
func (a AuthConfig) EditRole() domain.Role {
	role, _ := domain.ParseRole(a.MinEditRole)
	return role
}

// ExportConfig параметры выгрузки
type ExportConfig struct {
	FilenamePrefix string `toml:"filename_prefix" validate:"required"`
	SheetName      string `toml:"sheet_name" validate:"required,max=31"`
}

var validate = validator.New()

// Load загружает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := domain.ParseRole(cfg.Auth.MinViewRole); err != nil {
		return fmt.Errorf("config validation failed: auth.min_view_role: %w", err)
	}
	if _, err := domain.ParseRole(cfg.Auth.MinEditRole); err != nil {
		return fmt.Errorf("config validation failed: auth.min_edit_role: %w", err)
	}

	if cfg.Cache.Enabled && cfg.Redis.Addr == "" {
		return fmt.Errorf("config validation failed: redis.addr is required when cache is enabled")
	}

	return nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "pmi_capacity",
		},
		Cache: CacheConfig{
			TTLSeconds: 60,
			KeyPrefix:  "pmi:capacity",
		},
		UserService: UserServiceConfig{
			Timeout:    5,
			RetryCount: 2,
		},
		Auth: AuthConfig{
			MinViewRole: string(domain.RoleInstructor),
			MinEditRole: string(domain.RoleAdmin),
		},
		Export: ExportConfig{
			FilenamePrefix: "site-capacity",
			SheetName:      "Site Capacity",
		},
	}
}

// applyEnv переопределяет секреты из переменных окружения
func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}
