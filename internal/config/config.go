// Package config собирает настройки клиента и сервера из значений по
// умолчанию, конфигурационного файла, переменных окружения GOPHQUEUE_* и
// флагов командной строки (в порядке возрастания приоритета).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "GOPHQUEUE"

// Ключи настроек. Совпадают с именами флагов.
const (
	KeyConfig      = "config"
	KeyServer      = "server"
	KeyDB          = "db"
	KeyKeyPrefix   = "key-prefix"
	KeyTimeout     = "timeout"
	KeyConcurrency = "concurrency"
	KeyLogLevel    = "log-level"
	KeyAddr        = "addr"
	KeyJWTSecret   = "jwt-secret"
	KeyTokenTTL    = "token-ttl"
	KeyLogFile     = "log-file"
	KeyRateLimit   = "rate-limit"
	KeyRateWindow  = "rate-window"
)

var (
	ErrInvalidTimeout     = errors.New("timeout must be positive")
	ErrInvalidConcurrency = errors.New("concurrency must not be negative")
	ErrMissingSecret      = errors.New("jwt secret is required")
	ErrInvalidRateLimit   = errors.New("rate limit must be positive")
)

// ClientConfig настройки клиента очереди
type ClientConfig struct {
	ServerURL   string
	DBPath      string
	KeyPrefix   string
	LogLevel    slog.Level
	Timeout     time.Duration
	Concurrency int
}

// ServerConfig настройки сервера записей
type ServerConfig struct {
	Addr       string
	DBPath     string
	JWTSecret  string
	LogFile    string
	LogLevel   slog.Level
	TokenTTL   time.Duration
	RateWindow time.Duration
	RateLimit  int
}

// ClientDefaults регистрирует флаги клиента со значениями по умолчанию
func ClientDefaults(flags *pflag.FlagSet) {
	flags.String(KeyConfig, "", "path to config file")
	flags.String(KeyServer, "http://localhost:8080", "server URL")
	flags.String(KeyDB, "gophqueue-client.db", "path to local database")
	flags.String(KeyKeyPrefix, "queue-storage-", "prefix of queue storage keys")
	flags.Duration(KeyTimeout, 30*time.Second, "timeout of one remote call")
	flags.Int(KeyConcurrency, 0, "max records processed in parallel during replay (0 = unlimited)")
	flags.String(KeyLogLevel, "warn", "log level (debug, info, warn, error)")
}

// ServerDefaults регистрирует флаги сервера со значениями по умолчанию
func ServerDefaults(flags *pflag.FlagSet) {
	flags.String(KeyConfig, "", "path to config file")
	flags.String(KeyAddr, ":8080", "listen address")
	flags.String(KeyDB, "gophqueue-server.db", "path to SQLite database")
	flags.String(KeyJWTSecret, "", "secret for signing access tokens")
	flags.Duration(KeyTokenTTL, 24*time.Hour, "access token lifetime")
	flags.String(KeyLogFile, "", "log file (rotated); stdout when empty")
	flags.String(KeyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.Int(KeyRateLimit, 100, "requests allowed per rate window")
	flags.Duration(KeyRateWindow, time.Minute, "rate limit window")
}

// LoadClient читает настройки клиента
func LoadClient(flags *pflag.FlagSet) (*ClientConfig, error) {
	v, err := load(flags)
	if err != nil {
		return nil, err
	}

	level, err := parseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		ServerURL:   strings.TrimRight(v.GetString(KeyServer), "/"),
		DBPath:      v.GetString(KeyDB),
		KeyPrefix:   v.GetString(KeyKeyPrefix),
		LogLevel:    level,
		Timeout:     v.GetDuration(KeyTimeout),
		Concurrency: v.GetInt(KeyConcurrency),
	}

	if cfg.Timeout <= 0 {
		return nil, ErrInvalidTimeout
	}
	if cfg.Concurrency < 0 {
		return nil, ErrInvalidConcurrency
	}

	return cfg, nil
}

// LoadServer читает настройки сервера
func LoadServer(flags *pflag.FlagSet) (*ServerConfig, error) {
	v, err := load(flags)
	if err != nil {
		return nil, err
	}

	level, err := parseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Addr:       v.GetString(KeyAddr),
		DBPath:     v.GetString(KeyDB),
		JWTSecret:  v.GetString(KeyJWTSecret),
		LogFile:    v.GetString(KeyLogFile),
		LogLevel:   level,
		TokenTTL:   v.GetDuration(KeyTokenTTL),
		RateWindow: v.GetDuration(KeyRateWindow),
		RateLimit:  v.GetInt(KeyRateLimit),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.TokenTTL <= 0 || cfg.RateWindow <= 0 {
		return nil, ErrInvalidTimeout
	}
	if cfg.RateLimit <= 0 {
		return nil, ErrInvalidRateLimit
	}

	return cfg, nil
}

func load(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return v, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
