package oauth1

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Signer produces oauth_signature bytes over a signature base string.
type Signer interface {
	// Sign produces a signature over the given message bytes.
	Sign(message []byte) ([]byte, error)

	// Method returns the oauth_signature_method this signer produces.
	Method() SignatureMethod
}

// Verifier checks oauth_signature bytes over a signature base string.
type Verifier interface {
	// Verify returns nil when signature is valid for message.
	Verify(message, signature []byte) error

	// Method returns the oauth_signature_method this verifier accepts.
	Method() SignatureMethod
}

// RSASigner signs with RSASSA-PKCS1-v1_5 over SHA-256.
type RSASigner struct {
	key *Key
}

// NewRSASigner creates an RSASigner. The key must hold an RSA private key.
func NewRSASigner(key *Key) (*RSASigner, error) {
	if key == nil || key.signer == nil {
		return nil, &SigningError{Op: "sign", Err: ErrNilKey}
	}

	if _, ok := key.signer.Public().(*rsa.PublicKey); !ok {
		return nil, &SigningError{Op: "sign", Err: fmt.Errorf("%w: got %T", ErrUnsupportedKey, key.signer.Public())}
	}

	return &RSASigner{key: key}, nil
}

func (s *RSASigner) Sign(message []byte) ([]byte, error) { return s.key.Sign(message) }
func (s *RSASigner) Method() SignatureMethod             { return MethodRSASHA256 }

// RSAVerifier verifies RSASSA-PKCS1-v1_5 SHA-256 signatures.
type RSAVerifier struct {
	key *rsa.PublicKey
}

// NewRSAVerifier creates an RSAVerifier for pub.
func NewRSAVerifier(pub *rsa.PublicKey) (*RSAVerifier, error) {
	if pub == nil {
		return nil, fmt.Errorf("%w: rsa public key must not be nil", ErrNilKey)
	}

	return &RSAVerifier{key: pub}, nil
}

func (v *RSAVerifier) Verify(message, signature []byte) error {
	digest := sha256.Sum256(message)

	if err := rsa.VerifyPKCS1v15(v.key, crypto.SHA256, digest[:], signature); err != nil {
		return ErrSignatureInvalid
	}

	return nil
}

func (v *RSAVerifier) Method() SignatureMethod { return MethodRSASHA256 }

// Sign signs baseString with key and returns the standard base64 encoding
// of the signature. PKCS#1 v1.5 is deterministic: the same base string and
// key always give the same result.
func Sign(baseString string, key *Key) (string, error) {
	signer, err := NewRSASigner(key)
	if err != nil {
		return "", err
	}

	sig, err := signer.Sign([]byte(baseString))
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}

// VerifySignature checks a base64 oauth_signature over baseString with pub.
func VerifySignature(baseString, signature string, pub *rsa.PublicKey) error {
	verifier, err := NewRSAVerifier(pub)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: invalid base64 in signature", ErrMalformedHeader)
	}

	return verifier.Verify([]byte(baseString), sig)
}
