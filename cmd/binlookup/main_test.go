package main

import (
	"bytes"
	"crypto/rsa"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/binlookup/binlookup"
	"github.com/vitalvas/binlookup/keygen"
	"github.com/vitalvas/binlookup/oauth1"
	"github.com/vitalvas/binlookup/sandbox"
)

type testEnv struct {
	configPath   string
	keystorePath string
}

// newTestEnv writes a key container and a config file pointing at a
// running sandbox that trusts the container's key.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	for _, name := range []string{
		"MASTERCARD_CONSUMER_KEY", "MASTERCARD_P12_FILE_PATH", "MASTERCARD_KEYSTORE_PASSWORD",
		"MASTERCARD_BASE_URL", "MASTERCARD_TIMEOUT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	dir := t.TempDir()
	keystore := filepath.Join(dir, "consumer.p12")

	priv, err := keygen.WriteFile(keystore, "changeit", keygen.Options{})
	require.NoError(t, err)

	srv, err := sandbox.New(sandbox.Config{
		Consumers: map[string]*rsa.PublicKey{"cli-consumer": &priv.PublicKey},
		MaxAge:    time.Minute,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	cfgPath := filepath.Join(dir, "binlookup.yaml")
	cfg := "consumer_key: cli-consumer\n" +
		"keystore_path: " + keystore + "\n" +
		"keystore_password: changeit\n" +
		"base_url: " + ts.URL + "\n" +
		"timeout: 5s\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	return testEnv{configPath: cfgPath, keystorePath: keystore}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func TestLookupCommand(t *testing.T) {
	env := newTestEnv(t)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, "--config", env.configPath, "lookup", "5454 5412", "424242")
		require.NoError(t, err)

		assert.Contains(t, out, "Chase Bank")
		assert.Contains(t, out, "HSBC Bank")
		assert.Contains(t, out, "ISSUER")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "--config", env.configPath, "-o", "json", "lookup", "515555")
		require.NoError(t, err)

		var info binlookup.BINInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "Citibank", info.IssuerName)
	})

	t.Run("invalid BIN", func(t *testing.T) {
		_, err := run(t, "--config", env.configPath, "lookup", "123")
		assert.ErrorIs(t, err, binlookup.ErrInvalidBIN)
	})
}

func TestRangesAndSearchCommands(t *testing.T) {
	env := newTestEnv(t)

	t.Run("ranges", func(t *testing.T) {
		out, err := run(t, "--config", env.configPath, "ranges", "--size", "2")
		require.NoError(t, err)

		assert.Contains(t, out, "Discover Bank")
		assert.Contains(t, out, "1/4 (8 total)")
	})

	t.Run("search", func(t *testing.T) {
		out, err := run(t, "--config", env.configPath, "-o", "json", "search", "--country", "GB")
		require.NoError(t, err)

		var page binlookup.Page
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		require.Len(t, page.Content, 1)
		assert.Equal(t, "HSBC Bank", page.Content[0].IssuerName)
	})

	t.Run("search with body", func(t *testing.T) {
		out, err := run(t, "--config", env.configPath, "search", "--issuer", "wells", "--post")
		require.NoError(t, err)
		assert.Contains(t, out, "Wells Fargo")
	})

	t.Run("details not found", func(t *testing.T) {
		_, err := run(t, "--config", env.configPath, "details", "1", "2")
		assert.ErrorIs(t, err, binlookup.ErrNotFound)
	})
}

func TestSignCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "--config", env.configPath, "sign", "POST", "https://api.example.com/bin-ranges/search", "--body", `{"countryCode":"US"}`)
	require.NoError(t, err)

	header := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(header, `OAuth oauth_consumer_key="cli-consumer"`), header)

	params, err := oauth1.ParseHeader(header)
	require.NoError(t, err)

	hash, ok := params.Get(oauth1.ParamBodyHash)
	require.True(t, ok)
	assert.Equal(t, oauth1.BodyHash([]byte(`{"countryCode":"US"}`)), hash)

	t.Run("exclusive body flags", func(t *testing.T) {
		_, err := run(t, "--config", env.configPath, "sign", "POST", "https://api.example.com/", "--body", "x", "--body-file", "y")
		assert.Error(t, err)
	})

	t.Run("relative URL", func(t *testing.T) {
		_, err := run(t, "--config", env.configPath, "sign", "GET", "/bin-ranges")
		assert.ErrorIs(t, err, oauth1.ErrRelativeURL)
	})
}

func TestKeygenCommand(t *testing.T) {
	env := newTestEnv(t)

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := run(t, "--config", env.configPath, "keygen")
		assert.ErrorContains(t, err, "already exists")
	})

	t.Run("writes a loadable container", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "new.p12")

		out, err := run(t, "--config", env.configPath, "keygen", "--out", path, "--password", "pw", "--cn", "cli test")
		require.NoError(t, err)
		assert.Contains(t, out, path)

		key, err := oauth1.LoadKey(path, "pw")
		require.NoError(t, err)
		assert.Equal(t, "cli test", key.Certificate().Subject.CommonName)
	})
}

func TestOutputFlag(t *testing.T) {
	_, err := run(t, "-o", "yaml", "lookup", "545454")
	assert.ErrorContains(t, err, "unsupported output format")
}
