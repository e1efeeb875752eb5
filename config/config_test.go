package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "binlookup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadWith(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadWith(ctx, "", envconfig.MapLookuper(map[string]string{}))
		require.NoError(t, err)

		assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, DefaultTimeout, cfg.Timeout)
		assert.Equal(t, DefaultSandboxAddr, cfg.SandboxAddr)
		assert.Equal(t, DefaultSandboxMaxAge, cfg.SandboxMaxAge)
		assert.Empty(t, cfg.ConsumerKey)
	})

	t.Run("environment", func(t *testing.T) {
		cfg, err := LoadWith(ctx, "", envconfig.MapLookuper(map[string]string{
			"MASTERCARD_CONSUMER_KEY":      "ck",
			"MASTERCARD_P12_FILE_PATH":     "/keys/consumer.p12",
			"MASTERCARD_KEYSTORE_PASSWORD": "secret",
			"MASTERCARD_BASE_URL":          "https://api.mastercard.com",
			"MASTERCARD_TIMEOUT":           "10s",
		}))
		require.NoError(t, err)

		assert.Equal(t, "ck", cfg.ConsumerKey)
		assert.Equal(t, "/keys/consumer.p12", cfg.KeystorePath)
		assert.Equal(t, "secret", cfg.KeystorePassword)
		assert.Equal(t, "https://api.mastercard.com", cfg.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("file values", func(t *testing.T) {
		path := writeFile(t, `
consumer_key: file-ck
keystore_path: ./certs/consumer.p12
keystore_password: file-secret
base_url: http://127.0.0.1:8080
timeout: 5s
sandbox_max_age: 1m
`)

		cfg, err := LoadWith(ctx, path, envconfig.MapLookuper(map[string]string{}))
		require.NoError(t, err)

		assert.Equal(t, "file-ck", cfg.ConsumerKey)
		assert.Equal(t, "./certs/consumer.p12", cfg.KeystorePath)
		assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, time.Minute, cfg.SandboxMaxAge)
		assert.Equal(t, DefaultSandboxAddr, cfg.SandboxAddr)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeFile(t, "consumer_key: file-ck\ntimeout: 5s\n")

		cfg, err := LoadWith(ctx, path, envconfig.MapLookuper(map[string]string{
			"MASTERCARD_CONSUMER_KEY": "env-ck",
		}))
		require.NoError(t, err)

		assert.Equal(t, "env-ck", cfg.ConsumerKey)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWith(ctx, filepath.Join(t.TempDir(), "absent.yaml"), envconfig.MapLookuper(nil))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeFile(t, "consumer_key: [unterminated\n")

		_, err := LoadWith(ctx, path, envconfig.MapLookuper(nil))
		assert.Error(t, err)
	})

	t.Run("invalid duration in environment", func(t *testing.T) {
		_, err := LoadWith(ctx, "", envconfig.MapLookuper(map[string]string{
			"MASTERCARD_TIMEOUT": "soon",
		}))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := Config{
		ConsumerKey:      "ck",
		KeystorePath:     "consumer.p12",
		KeystorePassword: "pw",
		BaseURL:          DefaultBaseURL,
		Timeout:          DefaultTimeout,
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := valid
		cfg.ConsumerKey = ""
		cfg.KeystorePassword = ""

		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrMissingValue)
		assert.Contains(t, err.Error(), "MASTERCARD_CONSUMER_KEY")
		assert.Contains(t, err.Error(), "MASTERCARD_KEYSTORE_PASSWORD")
		assert.NotContains(t, err.Error(), "MASTERCARD_P12_FILE_PATH")
	})

	t.Run("relative base URL", func(t *testing.T) {
		cfg := valid
		cfg.BaseURL = "/bin-ranges"

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidValue)
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := valid
		cfg.Timeout = 0

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidValue)
	})
}

func TestString(t *testing.T) {
	cfg := Config{ConsumerKey: "ck", KeystorePassword: "hunter2"}

	assert.NotContains(t, cfg.String(), "hunter2")
	assert.Contains(t, cfg.String(), "keystore_password=****")
}
