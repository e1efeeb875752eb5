// Package keygen creates RSA signing identities packaged as
// password-protected PKCS#12 containers, in the shape oauth1.LoadKey
// expects. It is meant for sandbox use and test fixtures; production
// containers are issued by the API provider.
package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"software.sslmate.com/src/go-pkcs12"
)

// DefaultBits is the RSA modulus size used when Options.Bits is zero.
const DefaultBits = 2048

// ErrWeakKey is returned when Options.Bits is below DefaultBits.
var ErrWeakKey = errors.New("keygen: rsa key must be at least 2048 bits")

// Options configures key and certificate generation.
type Options struct {
	// Bits is the RSA modulus size. Defaults to DefaultBits.
	Bits int

	// CommonName is the certificate subject. Defaults to "binlookup sandbox".
	CommonName string

	// Validity is the certificate lifetime. Defaults to one year.
	Validity time.Duration
}

// Generate creates an RSA private key and a self-signed certificate for it.
func Generate(opts Options) (*rsa.PrivateKey, *x509.Certificate, error) {
	bits := opts.Bits
	if bits == 0 {
		bits = DefaultBits
	}

	if bits < DefaultBits {
		return nil, nil, ErrWeakKey
	}

	cn := opts.CommonName
	if cn == "" {
		cn = "binlookup sandbox"
	}

	validity := opts.Validity
	if validity <= 0 {
		validity = 365 * 24 * time.Hour
	}

	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, fmt.Errorf("keygen: generate rsa key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return nil, nil, fmt.Errorf("keygen: serial number: %w", err)
	}

	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		return nil, nil, fmt.Errorf("keygen: create certificate: %w", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, fmt.Errorf("keygen: parse certificate: %w", err)
	}

	return priv, cert, nil
}

// Encode packages priv and cert into a PKCS#12 container protected by
// password, using AES-256 and a SHA-256 MAC.
func Encode(priv *rsa.PrivateKey, cert *x509.Certificate, password string) ([]byte, error) {
	data, err := pkcs12.Modern.Encode(priv, cert, nil, password)
	if err != nil {
		return nil, fmt.Errorf("keygen: encode container: %w", err)
	}

	return data, nil
}

// WriteFile generates a key pair and writes it to path as a PKCS#12
// container. The file is created with mode 0600.
func WriteFile(path, password string, opts Options) (*rsa.PrivateKey, error) {
	priv, cert, err := Generate(opts)
	if err != nil {
		return nil, err
	}

	data, err := Encode(priv, cert, password)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("keygen: write %s: %w", path, err)
	}

	return priv, nil
}
