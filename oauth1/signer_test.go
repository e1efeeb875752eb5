package oauth1

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSASignerVerifier(t *testing.T) {
	priv, cert := testKeyPair(t)

	key, err := NewKey(priv, cert)
	require.NoError(t, err)

	signer, err := NewRSASigner(key)
	require.NoError(t, err)

	verifier, err := NewRSAVerifier(&priv.PublicKey)
	require.NoError(t, err)

	var (
		_ Signer   = signer
		_ Verifier = verifier
	)

	assert.Equal(t, MethodRSASHA256, signer.Method())
	assert.Equal(t, MethodRSASHA256, verifier.Method())

	msg := []byte("GET&https%3A%2F%2Fapi.example.com%2Fbin-ranges&page%3D1")

	sig, err := signer.Sign(msg)
	require.NoError(t, err)
	assert.Len(t, sig, priv.Size())

	assert.NoError(t, verifier.Verify(msg, sig))
	assert.ErrorIs(t, verifier.Verify(append(msg, '2'), sig), ErrSignatureInvalid)

	sig[0] ^= 0xff
	assert.ErrorIs(t, verifier.Verify(msg, sig), ErrSignatureInvalid)
}

func TestNewRSASigner(t *testing.T) {
	t.Run("nil key", func(t *testing.T) {
		_, err := NewRSASigner(nil)

		var signErr *SigningError
		require.ErrorAs(t, err, &signErr)
		assert.ErrorIs(t, err, ErrNilKey)
	})

	t.Run("ecdsa key", func(t *testing.T) {
		ec, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		key, err := NewKey(ec, nil)
		require.NoError(t, err)

		_, err = NewRSASigner(key)
		assert.ErrorIs(t, err, ErrUnsupportedKey)
	})
}

func TestNewRSAVerifier(t *testing.T) {
	_, err := NewRSAVerifier(nil)
	assert.ErrorIs(t, err, ErrNilKey)
}
