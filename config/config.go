// Package config loads binlookup settings from an optional YAML file and
// the environment.
//
// Environment variables take precedence over the file; defaults apply only
// when neither sets a value.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultBaseURL       = "https://sandbox.api.mastercard.com"
	DefaultTimeout       = 30 * time.Second
	DefaultSandboxAddr   = ":8080"
	DefaultSandboxMaxAge = 5 * time.Minute
)

// ErrMissingValue is returned by Validate when a required setting is empty.
var ErrMissingValue = errors.New("config: required value missing")

// ErrInvalidValue is returned by Validate when a setting cannot be used.
var ErrInvalidValue = errors.New("config: invalid value")

// Config holds the consumer credentials and client settings.
type Config struct {
	// ConsumerKey is the oauth_consumer_key issued with the key container.
	ConsumerKey string `yaml:"consumer_key" env:"MASTERCARD_CONSUMER_KEY, overwrite"`

	// KeystorePath is the path of the PKCS#12 key container.
	KeystorePath string `yaml:"keystore_path" env:"MASTERCARD_P12_FILE_PATH, overwrite"`

	// KeystorePassword decrypts the key container.
	KeystorePassword string `yaml:"keystore_password" env:"MASTERCARD_KEYSTORE_PASSWORD, overwrite"`

	// BaseURL is the API root the client sends requests to.
	BaseURL string `yaml:"base_url" env:"MASTERCARD_BASE_URL, overwrite, default=https://sandbox.api.mastercard.com"`

	// Timeout bounds each HTTP request, including reading the response.
	Timeout time.Duration `yaml:"timeout" env:"MASTERCARD_TIMEOUT, overwrite, default=30s"`

	// SandboxAddr is the listen address of the sandbox gateway.
	SandboxAddr string `yaml:"sandbox_addr" env:"SANDBOX_ADDR, overwrite, default=:8080"`

	// SandboxMaxAge is the accepted oauth_timestamp skew of the sandbox gateway.
	SandboxMaxAge time.Duration `yaml:"sandbox_max_age" env:"SANDBOX_MAX_AGE, overwrite, default=5m"`
}

// Load reads the YAML file at path, when path is not empty, and then applies
// the process environment.
func Load(ctx context.Context, path string) (*Config, error) {
	return LoadWith(ctx, path, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit environment lookuper.
func LoadWith(ctx context.Context, path string, l envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.ProcessWith(ctx, cfg, l); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

// Validate checks the settings needed to sign requests against the API.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"MASTERCARD_CONSUMER_KEY", c.ConsumerKey},
		{"MASTERCARD_P12_FILE_PATH", c.KeystorePath},
		{"MASTERCARD_KEYSTORE_PASSWORD", c.KeystorePassword},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingValue, r.name))
		}
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: base URL %q must be absolute", ErrInvalidValue, c.BaseURL))
	}

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: timeout must be positive", ErrInvalidValue))
	}

	return errors.Join(errs...)
}

// String renders the configuration with the keystore password masked.
func (c Config) String() string {
	password := ""
	if c.KeystorePassword != "" {
		password = "****"
	}

	return fmt.Sprintf("consumer_key=%s keystore_path=%s keystore_password=%s base_url=%s timeout=%s",
		c.ConsumerKey, c.KeystorePath, password, c.BaseURL, c.Timeout)
}
