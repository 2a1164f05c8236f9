package api

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/petfriends-qa/petfriends-api-tests/internal/config"
)

type TestConfig struct {
	Live           bool
	BaseURL        string
	Email          string
	Password       string
	InvalidEmail   string
	RequestTimeout time.Duration
	ImagesDir      string
	LogRequests    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Service settings (base URL, credentials, invalid email, request timeout) come
// from internal/config so the suites and the CLI read the same keys.
// Returns an error if a live run is requested without credentials.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	appCfg, err := config.LoadFrom(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := &TestConfig{
		Live:           getBoolWithDefault("PETFRIENDS_LIVE", false),
		BaseURL:        appCfg.BaseURL,
		Email:          appCfg.Email,
		Password:       appCfg.Password,
		InvalidEmail:   appCfg.InvalidEmail,
		RequestTimeout: appCfg.RequestTimeout,
		ImagesDir:      getStringWithDefault("PETFRIENDS_IMAGES_DIR", defaultImagesDir()),
		LogRequests:    getBoolWithDefault("LOG_REQUESTS", false),
	}

	if err := validateRequiredFields(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ImagePath returns the path of a fixture file under the images directory.
func (c *TestConfig) ImagePath(name string) string {
	return filepath.Join(c.ImagesDir, name)
}

func getStringWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// defaultImagesDir resolves test/api/images relative to this source file so
// the suites find their fixtures regardless of the working directory.
func defaultImagesDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "images"
	}
	return filepath.Join(filepath.Dir(file), "images")
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env", // From test/api/suites directory
		"test/.env",  // From the repository root
	}

	var envPath string
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// no .env file; env vars may still be set directly (CI)
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateRequiredFields checks that a live run has what it needs.
func validateRequiredFields(cfg *TestConfig) error {
	if !cfg.Live {
		return nil
	}

	var missing []string
	if cfg.Email == "" {
		missing = append(missing, "PETFRIENDS_EMAIL")
	}
	if cfg.Password == "" {
		missing = append(missing, "PETFRIENDS_PASSWORD")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration for live run: %s. Please set these environment variables or add them to test/.env", strings.Join(missing, ", "))
	}

	return nil
}
