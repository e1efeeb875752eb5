package oauth1

import (
	"crypto/rsa"
	"crypto/x509"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vitalvas/binlookup/keygen"
)

var (
	fixtureOnce sync.Once
	fixtureKey  *rsa.PrivateKey
	fixtureCert *x509.Certificate
	fixtureErr  error
)

// testKeyPair returns an RSA key and certificate shared by all tests in the
// package; generating 2048-bit keys per test is slow.
func testKeyPair(t *testing.T) (*rsa.PrivateKey, *x509.Certificate) {
	t.Helper()

	fixtureOnce.Do(func() {
		fixtureKey, fixtureCert, fixtureErr = keygen.Generate(keygen.Options{CommonName: "oauth1 test"})
	})
	require.NoError(t, fixtureErr)

	return fixtureKey, fixtureCert
}

// writeTestContainer writes the shared key pair as a PKCS#12 file.
func writeTestContainer(t *testing.T, password string) string {
	t.Helper()

	priv, cert := testKeyPair(t)

	data, err := keygen.Encode(priv, cert, password)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "consumer.p12")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func testIdentity(t *testing.T) *Identity {
	t.Helper()

	priv, cert := testKeyPair(t)

	key, err := NewKey(priv, cert)
	require.NoError(t, err)

	id, err := NewIdentity("consumer-key-123", key)
	require.NoError(t, err)

	return id
}

// fixedAuthorizer returns an Authorizer with a constant nonce and clock.
func fixedAuthorizer(t *testing.T) *Authorizer {
	t.Helper()

	a, err := NewAuthorizer(Config{
		Identity: testIdentity(t),
		Nonce:    func() (string, error) { return "0123456789abcdef0123456789abcdef", nil },
		Now:      func() time.Time { return time.Unix(1700000000, 0) },
	})
	require.NoError(t, err)

	return a
}

func mustAtoi(t *testing.T, s string) int64 {
	t.Helper()

	n, err := strconv.ParseInt(s, 10, 64)
	require.NoError(t, err)

	return n
}
