package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config contains runtime configuration required by the service.
// Everything is read from environment variables (HTTP_ADDR, API_KEY,
// LOADS_PATH, DB_URL or DB_HOST/DB_PORT/..., LOG_LEVEL, LOG_ENCODING).
type Config struct {
	HTTPAddr  string    `mapstructure:"http_addr"`
	APIKey    string    `mapstructure:"api_key"`
	LoadsPath string    `mapstructure:"loads_path"`
	DB        DBConfig  `mapstructure:"db"`
	Log       LogConfig `mapstructure:"log"`
}

type DBConfig struct {
	// URL is a full connection string; when set it overrides the
	// individual host/port/user/password/name parameters.
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// DSN returns the Postgres connection string for the call log store.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password),
		d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from the environment, applying defaults.
// API_KEY has no default: the service refuses to start without a secret.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("api_key", "")
	v.SetDefault("loads_path", "data/loads.json")
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "inbound")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return Config{}, errors.New("API_KEY required")
	}

	return cfg, nil
}
