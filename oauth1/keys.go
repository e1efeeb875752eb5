package oauth1

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"sync"

	"software.sslmate.com/src/go-pkcs12"
)

// Key is an opaque signing capability backed by a private key. It exposes
// signing and the public half only; the private key is never returned.
//
// A Key is immutable and safe for concurrent use.
type Key struct {
	signer crypto.Signer
	cert   *x509.Certificate
}

// NewKey wraps an in-memory private key. cert is optional.
func NewKey(priv crypto.Signer, cert *x509.Certificate) (*Key, error) {
	if priv == nil {
		return nil, ErrNilKey
	}

	return &Key{signer: priv, cert: cert}, nil
}

// ParseKey decodes a password-protected PKCS#12 container and extracts its
// private key and leaf certificate.
func ParseKey(data []byte, password string) (*Key, error) {
	priv, cert, _, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, &KeyLoadError{Err: err}
	}

	signer, ok := priv.(crypto.Signer)
	if !ok {
		return nil, &KeyLoadError{Err: ErrNoPrivateKey}
	}

	return &Key{signer: signer, cert: cert}, nil
}

// LoadKey reads the PKCS#12 container at path and extracts its private key.
// Any failure is reported as a *KeyLoadError carrying path.
func LoadKey(path, password string) (*Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &KeyLoadError{Path: path, Err: err}
	}

	key, err := ParseKey(data, password)
	if err != nil {
		var le *KeyLoadError
		if errors.As(err, &le) {
			le.Path = path
		}

		return nil, err
	}

	return key, nil
}

// Sign produces an RSASSA-PKCS1-v1_5 SHA-256 signature over message.
func (k *Key) Sign(message []byte) ([]byte, error) {
	if k == nil || k.signer == nil {
		return nil, &SigningError{Op: "sign", Err: ErrNilKey}
	}

	if _, ok := k.signer.Public().(*rsa.PublicKey); !ok {
		return nil, &SigningError{Op: "sign", Err: fmt.Errorf("%w: got %T", ErrUnsupportedKey, k.signer.Public())}
	}

	digest := sha256.Sum256(message)

	sig, err := k.signer.Sign(rand.Reader, digest[:], crypto.SHA256)
	if err != nil {
		return nil, &SigningError{Op: "sign", Err: err}
	}

	return sig, nil
}

// Public returns the public key matching the private key.
func (k *Key) Public() crypto.PublicKey {
	return k.signer.Public()
}

// Certificate returns the certificate bundled with the key, or nil.
func (k *Key) Certificate() *x509.Certificate {
	return k.cert
}

// String never reveals key material.
func (k *Key) String() string {
	return fmt.Sprintf("oauth1.Key(%T)", k.signer.Public())
}

// GoString never reveals key material.
func (k *Key) GoString() string {
	return k.String()
}

// Identity is the signing identity of a consumer: its consumer key and
// private key. It is immutable and meant to be created once and shared.
type Identity struct {
	consumerKey string
	key         *Key
}

// NewIdentity pairs a consumer key with a private key.
func NewIdentity(consumerKey string, key *Key) (*Identity, error) {
	if consumerKey == "" {
		return nil, ErrNoConsumerKey
	}

	if key == nil {
		return nil, ErrNilKey
	}

	return &Identity{consumerKey: consumerKey, key: key}, nil
}

// LoadIdentity loads the PKCS#12 container at path and builds an Identity.
func LoadIdentity(consumerKey, path, password string) (*Identity, error) {
	if consumerKey == "" {
		return nil, ErrNoConsumerKey
	}

	key, err := LoadKey(path, password)
	if err != nil {
		return nil, err
	}

	return &Identity{consumerKey: consumerKey, key: key}, nil
}

// IdentityLoader returns a function that loads the identity on first call
// and returns the same identity, or the same error, on every later call.
// It is safe to call from multiple goroutines.
func IdentityLoader(consumerKey, path, password string) func() (*Identity, error) {
	return sync.OnceValues(func() (*Identity, error) {
		return LoadIdentity(consumerKey, path, password)
	})
}

// ConsumerKey returns the oauth_consumer_key value.
func (id *Identity) ConsumerKey() string {
	return id.consumerKey
}

// Key returns the signing key.
func (id *Identity) Key() *Key {
	return id.key
}
