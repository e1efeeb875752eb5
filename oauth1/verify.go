package oauth1

import (
	"crypto/rsa"
	"crypto/subtle"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PublicKeyResolver returns the RSA public key registered for consumerKey.
// The request is provided for context.
type PublicKeyResolver func(r *http.Request, consumerKey string) (*rsa.PublicKey, error)

// VerifyConfig configures server-side verification of signed requests.
type VerifyConfig struct {
	// Resolver looks up the consumer's public key. Required.
	Resolver PublicKeyResolver

	// MaxAge bounds the distance between oauth_timestamp and the current
	// time, in both directions. Zero disables the check.
	MaxAge time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// BaseURL returns the base string URI of an incoming request. Defaults
	// to scheme, Host header and escaped path; override it behind proxies
	// that rewrite the host or scheme.
	BaseURL func(r *http.Request) string
}

// VerifyRequest verifies the OAuth 1.0a RSA-SHA256 Authorization header of r.
// The parameter set is rebuilt exactly as Authorizer builds it, so a header
// produced by BuildHeader for the same method, URL and body verifies.
func VerifyRequest(r *http.Request, cfg VerifyConfig) error {
	_, err := verifyRequest(r, cfg)
	return err
}

// verifyRequest verifies r and returns the authenticated consumer key.
func verifyRequest(r *http.Request, cfg VerifyConfig) (string, error) {
	if cfg.Resolver == nil {
		return "", ErrNoResolver
	}

	value := r.Header.Get("Authorization")
	if value == "" {
		return "", ErrMissingHeader
	}

	params, err := ParseHeader(value)
	if err != nil {
		return "", err
	}

	for _, name := range []string{ParamConsumerKey, ParamNonce, ParamSignatureMethod, ParamTimestamp, ParamSignature} {
		if v, _ := params.Get(name); v == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParameter, name)
		}
	}

	if m, _ := params.Get(ParamSignatureMethod); m != MethodRSASHA256.String() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}

	if v, ok := params.Get(ParamVersion); ok && v != Version {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
	}

	if err := checkTimestamp(params, cfg); err != nil {
		return "", err
	}

	method := strings.ToUpper(r.Method)
	if method == "" {
		method = http.MethodGet
	}

	body, err := readAndRestoreBody(r)
	if err != nil {
		return "", err
	}

	if err := checkBodyHash(params, method, body); err != nil {
		return "", err
	}

	signed := signedParams(params, queryParams(r.URL))

	baseURL := requestBaseURL(r)
	if cfg.BaseURL != nil {
		baseURL = cfg.BaseURL(r)
	}

	consumerKey, _ := params.Get(ParamConsumerKey)

	pub, err := cfg.Resolver(r, consumerKey)
	if err != nil {
		return "", err
	}

	signature, _ := params.Get(ParamSignature)
	if err := VerifySignature(BaseString(method, baseURL, signed), signature, pub); err != nil {
		return "", err
	}

	return consumerKey, nil
}

func checkTimestamp(params *Params, cfg VerifyConfig) error {
	raw, _ := params.Get(ParamTimestamp)

	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid timestamp %q", ErrMalformedHeader, raw)
	}

	if cfg.MaxAge <= 0 {
		return nil
	}

	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	skew := now().Sub(time.Unix(ts, 0))
	if skew < 0 {
		skew = -skew
	}

	if skew > cfg.MaxAge {
		return ErrTimestampExpired
	}

	return nil
}

func checkBodyHash(params *Params, method string, body []byte) error {
	got, present := params.Get(ParamBodyHash)

	if !present {
		if needsBodyHash(method, body) {
			return fmt.Errorf("%w: %s missing", ErrBodyHashMismatch, ParamBodyHash)
		}

		return nil
	}

	if subtle.ConstantTimeCompare([]byte(got), []byte(BodyHash(body))) != 1 {
		return ErrBodyHashMismatch
	}

	return nil
}

// requestBaseURL derives the base string URI of an incoming request.
func requestBaseURL(r *http.Request) string {
	if r.URL.IsAbs() && r.URL.Host != "" {
		return BaseURL(r.URL)
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	return BaseURL(&url.URL{
		Scheme:  scheme,
		Host:    r.Host,
		Path:    r.URL.Path,
		RawPath: r.URL.RawPath,
	})
}
