package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config корневая конфигурация сервиса (config.toml)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Admin    AdminConfig    `toml:"admin"`
	Payments PaymentsConfig `toml:"payments"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Backup   BackupConfig   `toml:"backup"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
}

// DSN собирает строку подключения для lib/pq
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

// AdminConfig учетные данные HTTP Basic для админ-панели.
// Значения из config.toml перекрываются переменными окружения,
// чтобы секреты не жили в репозитории.
type AdminConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// PaymentsConfig платежные реквизиты, показываемые клиенту
type PaymentsConfig struct {
	GCashNumber string `toml:"gcash_number"`
}

// SeedPolicy политика начальной загрузки каталога
type SeedPolicy string

const (
	// SeedIfEmpty загружает каталог только если таблица услуг пуста
	SeedIfEmpty SeedPolicy = "if_empty"
	// SeedReplace всегда полностью заменяет каталог содержимым seed-файлов
	SeedReplace SeedPolicy = "replace"
)

// CatalogConfig источники начальной загрузки каталога услуг
type CatalogConfig struct {
	ServicesFile string     `toml:"services_file"`
	PricingFile  string     `toml:"pricing_file"`
	SeedPolicy   SeedPolicy `toml:"seed_policy"`
}

// BackupConfig настройки резервного копирования
type BackupConfig struct {
	Dir          string `toml:"dir"`
	MaxSnapshots int    `toml:"max_snapshots"`
}

// Env переменные, перекрывающие значения из config.toml
const (
	EnvDBPassword    = "CLEANIT_DB_PASSWORD"
	EnvAdminUsername = "CLEANIT_ADMIN_USERNAME"
	EnvAdminPassword = "CLEANIT_ADMIN_PASSWORD"
)

// Load читает конфигурацию из TOML файла и применяет env-переопределения
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "cleanit",
		},
		Catalog: CatalogConfig{
			SeedPolicy: SeedIfEmpty,
		},
		Backup: BackupConfig{
			Dir:          "backups",
			MaxSnapshots: 5,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvDBPassword); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv(EnvAdminUsername); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv(EnvAdminPassword); v != "" {
		cfg.Admin.Password = v
	}
}

func (c *Config) validate() error {
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return errors.New("config: admin credentials are required (set [admin] or CLEANIT_ADMIN_* env)")
	}
	if c.Catalog.SeedPolicy != SeedIfEmpty && c.Catalog.SeedPolicy != SeedReplace {
		return fmt.Errorf("config: unknown catalog seed_policy %q", c.Catalog.SeedPolicy)
	}
	if c.Backup.MaxSnapshots <= 0 {
		return errors.New("config: backup max_snapshots must be positive")
	}
	return nil
}
