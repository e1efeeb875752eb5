package oauth1

import (
	"errors"
	"fmt"
)

// Key material errors.
var (
	// ErrNilKey is returned when a nil private key is supplied.
	ErrNilKey = errors.New("oauth1: private key must not be nil")

	// ErrNoPrivateKey is returned when a key container decodes but holds
	// no usable private key.
	ErrNoPrivateKey = errors.New("oauth1: key container holds no private key")

	// ErrUnsupportedKey is returned when the private key cannot produce
	// RSA-SHA256 signatures.
	ErrUnsupportedKey = errors.New("oauth1: private key is not an RSA key")
)

// Configuration errors.
var (
	// ErrNoIdentity is returned when an Authorizer is created without an
	// Identity.
	ErrNoIdentity = errors.New("oauth1: identity must not be nil")

	// ErrNoConsumerKey is returned when an Identity has an empty consumer key.
	ErrNoConsumerKey = errors.New("oauth1: consumer key must not be empty")

	// ErrNoAuthorizer is returned by Transport when it has no Authorizer.
	ErrNoAuthorizer = errors.New("oauth1: authorizer must not be nil")
)

// Input errors.
var (
	// ErrUnknownMethod is returned when the HTTP method is not a recognized verb.
	ErrUnknownMethod = errors.New("oauth1: unrecognized HTTP method")

	// ErrRelativeURL is returned when the request URL lacks a scheme or host.
	ErrRelativeURL = errors.New("oauth1: request URL must be absolute")
)

// Verification errors.
var (
	// ErrNoResolver is returned when VerifyConfig has no Resolver configured.
	ErrNoResolver = errors.New("oauth1: public key resolver must not be nil")

	// ErrMissingHeader is returned when the request carries no OAuth
	// Authorization header.
	ErrMissingHeader = errors.New("oauth1: authorization header not found")

	// ErrMalformedHeader is returned when the Authorization header cannot be
	// parsed.
	ErrMalformedHeader = errors.New("oauth1: malformed authorization header")

	// ErrMissingParameter is returned when a required oauth_* parameter is
	// absent from the header.
	ErrMissingParameter = errors.New("oauth1: required oauth parameter missing")

	// ErrUnsupportedMethod is returned when the header names a signature
	// method other than RSA-SHA256.
	ErrUnsupportedMethod = errors.New("oauth1: unsupported signature method")

	// ErrUnsupportedVersion is returned when oauth_version is present and not 1.0.
	ErrUnsupportedVersion = errors.New("oauth1: unsupported oauth version")

	// ErrTimestampExpired is returned when oauth_timestamp falls outside the
	// accepted window.
	ErrTimestampExpired = errors.New("oauth1: timestamp outside accepted window")

	// ErrBodyHashMismatch is returned when oauth_body_hash does not match
	// the request body.
	ErrBodyHashMismatch = errors.New("oauth1: body hash mismatch")

	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = errors.New("oauth1: signature verification failed")
)

// KeyLoadError reports a failure to obtain a private key from a key
// container: the file is unreadable, the password is wrong, or the
// container holds no private key.
type KeyLoadError struct {
	// Path is the container path, empty when the key was parsed from memory.
	Path string
	Err  error
}

func (e *KeyLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("oauth1: load key: %v", e.Err)
	}

	return fmt.Sprintf("oauth1: load key %s: %v", e.Path, e.Err)
}

func (e *KeyLoadError) Unwrap() error { return e.Err }

// SigningError reports a failed cryptographic operation while producing a
// signed header.
type SigningError struct {
	// Op names the step that failed, e.g. "sign" or "generate nonce".
	Op  string
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("oauth1: %s: %v", e.Op, e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// MalformedInputError reports an unusable method or URL. It is always
// returned before any cryptographic work happens.
type MalformedInputError struct {
	// Field is "method" or "url".
	Field string
	Value string
	Err   error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("oauth1: invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }
