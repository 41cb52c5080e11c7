// Package config loads server configuration from defaults, a YAML file,
// PASSKEEPER_* environment variables and command line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName   = "passkeeper"
	envPrefix = "passkeeper"
)

// Supported storage drivers
var storageDrivers = []string{"sqlite", "postgres", "mysql", "bolt", "mongo"}

// Config конфигурация сервера
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Cipher  CipherConfig  `mapstructure:"cipher" yaml:"cipher"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// ServerConfig параметры HTTP сервера
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	RateWindow      time.Duration `mapstructure:"rate_window" yaml:"rate_window"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	RateLimit       int           `mapstructure:"rate_limit" yaml:"rate_limit"` // 0 отключает ограничение
	// TrustProxy включает ключ rate limit по X-Forwarded-For; только за доверенным reverse proxy
	TrustProxy      bool          `mapstructure:"trust_proxy" yaml:"trust_proxy"`
}

// LogConfig параметры логирования
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text или json
}

// StorageConfig параметры хранилища
type StorageConfig struct {
	Driver        string `mapstructure:"driver" yaml:"driver"`
	DSN           string `mapstructure:"dsn" yaml:"dsn"` // путь к файлу для sqlite/bolt, URI для остальных
	MongoDatabase string `mapstructure:"mongo_database" yaml:"mongo_database"`
}

// CipherConfig параметры шифрования записей
type CipherConfig struct {
	Secret             string `mapstructure:"secret" yaml:"secret"`
	AllowDefaultSecret bool   `mapstructure:"allow_default_secret" yaml:"allow_default_secret"`
}

// AuthConfig параметры проверки bearer токенов
type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	Issuer     string `mapstructure:"issuer" yaml:"issuer"`
	SkipVerify bool   `mapstructure:"skip_verify" yaml:"skip_verify"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Defaults returns the default value of every configuration key
func Defaults() map[string]any {
	return map[string]any{
		"server.addr":                 ":3000",
		"server.read_timeout":         10 * time.Second,
		"server.write_timeout":        30 * time.Second,
		"server.idle_timeout":         120 * time.Second,
		"server.shutdown_timeout":     10 * time.Second,
		"server.max_body_bytes":       int64(20 << 10),
		"server.rate_limit":           100,
		"server.rate_window":          time.Minute,
		"server.trust_proxy":          false,
		"log.level":                   "info",
		"log.format":                  "text",
		"storage.driver":              "sqlite",
		"storage.dsn":                 "./passkeeper.db",
		"storage.mongo_database":      "passkeeper",
		"cipher.secret":               "",
		"cipher.allow_default_secret": false,
		"auth.jwt_secret":             "",
		"auth.issuer":                 "",
		"auth.skip_verify":            false,
		"metrics.enabled":             true,
	}
}

// FlagBindings maps cobra flag names to configuration keys
var FlagBindings = map[string]string{
	"addr":        "server.addr",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"driver":      "storage.driver",
	"dsn":         "storage.dsn",
	"skip-verify": "auth.skip_verify",
}

// DefaultPath returns the per-user configuration file path
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, appName, appName+".yaml"), nil
}

func systemDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("ProgramData"), "Passkeeper")
	}
	return "/etc/" + appName
}

// Load reads the configuration. configFile, when not empty, must exist;
// otherwise passkeeper.yaml is searched in the user config dir, the system dir and ".".
// cmd may be nil.
func Load(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	// 1. Defaults
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	// 2. Файл конфигурации
	v.SetConfigName(appName)
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if userPath, err := DefaultPath(); err == nil {
		v.AddConfigPath(filepath.Dir(userPath))
	}
	v.AddConfigPath(systemDir())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// Отсутствие файла в стандартных путях допустимо, остальные ошибки фатальны
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// 3. Переменные окружения: PASSKEEPER_SERVER_ADDR и т.д.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Флаги командной строки
	if cmd != nil {
		for name, key := range FlagBindings {
			if flag := cmd.Flags().Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return c, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to parse config: %w", err)
	}

	return c, nil
}

// Validate checks values that cannot be defaulted
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if !slices.Contains(storageDrivers, c.Storage.Driver) {
		return fmt.Errorf("storage.driver must be one of %s, got %q", strings.Join(storageDrivers, ", "), c.Storage.Driver)
	}
	if c.Storage.DSN == "" {
		return errors.New("storage.dsn is required")
	}
	if c.Storage.Driver == "mongo" && c.Storage.MongoDatabase == "" {
		return errors.New("storage.mongo_database is required for the mongo driver")
	}
	if !c.Auth.SkipVerify && c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required unless auth.skip_verify is set")
	}
	if c.Server.RateLimit < 0 {
		return errors.New("server.rate_limit cannot be negative")
	}
	return nil
}

// WriteFile сохраняет конфигурацию в YAML. Существующий файл не перезаписывается без force.
// Файл может содержать секреты, поэтому создается с правами 0600.
func WriteFile(path string, c Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
