package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL      = "https://petfriends.skillfactory.ru"
	DefaultOutputFormat = "json"

	// DefaultInvalidEmail is an address the service has never registered.
	DefaultInvalidEmail = "invalid-user@example.com"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL      string `mapstructure:"petfriends_base_url"`
	Email        string `mapstructure:"petfriends_email"`
	Password     string `mapstructure:"petfriends_password"`
	InvalidEmail string `mapstructure:"petfriends_invalid_email"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	OutputFormat string `mapstructure:"output_format"`
}

// EnvFile is loaded, when present, before the environment is read.
const EnvFile = "configs/.env"

// Load reads configuration from EnvFile and environment variables into v.
// A nil v gets a fresh viper instance.
func Load(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load(EnvFile)
	if v == nil {
		v = viper.New()
	}
	return LoadFrom(v)
}

// LoadFrom fills defaults into v, binds the environment and unmarshals the result.
// Callers may pre-bind flags on v before calling it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "petfriends")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("petfriends_base_url", DefaultBaseURL)
	v.SetDefault("petfriends_email", "")
	v.SetDefault("petfriends_password", "")
	v.SetDefault("petfriends_invalid_email", DefaultInvalidEmail)
	v.SetDefault("request_timeout_seconds", 0) // no local timeout
	v.SetDefault("output_format", DefaultOutputFormat)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid petfriends_base_url (must not be empty)")
	}
	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	switch cfg.OutputFormat {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("invalid output_format %q (json or yaml)", cfg.OutputFormat)
	}

	return &cfg, nil
}

// HasCredentials reports whether both email and password are configured.
func (c *Config) HasCredentials() bool {
	return c.Email != "" && c.Password != ""
}
