package oauth1

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// nonceSize is the number of random bytes used to generate a nonce.
const nonceSize = 16

// GenerateNonce returns 16 cryptographically random bytes encoded as
// lowercase hex (32 characters).
func GenerateNonce() (string, error) {
	b := make([]byte, nonceSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// Config configures an Authorizer.
type Config struct {
	// Identity supplies the consumer key and private key. Required.
	Identity *Identity

	// Nonce returns a fresh oauth_nonce. Defaults to GenerateNonce.
	Nonce func() (string, error)

	// Now returns the current time used for oauth_timestamp. Defaults to
	// time.Now.
	Now func() time.Time
}

// Authorizer issues OAuth 1.0a Authorization headers signed with
// RSA-SHA256. It holds no mutable state and is safe for concurrent use.
type Authorizer struct {
	identity *Identity
	nonce    func() (string, error)
	now      func() time.Time
}

// NewAuthorizer creates an Authorizer from cfg.
func NewAuthorizer(cfg Config) (*Authorizer, error) {
	if cfg.Identity == nil {
		return nil, ErrNoIdentity
	}

	nonce := cfg.Nonce
	if nonce == nil {
		nonce = GenerateNonce
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Authorizer{
		identity: cfg.Identity,
		nonce:    nonce,
		now:      now,
	}, nil
}

// BuildHeader returns the Authorization header value for a request with
// the given method, absolute URL and optional body.
//
// Query parameters of rawURL are merged into the signed parameter set but
// never rendered in the header. A query parameter that shares its name with
// a protocol parameter replaces that value in the signed set only, except
// oauth_body_hash, which always covers the actual body.
func (a *Authorizer) BuildHeader(method, rawURL string, body []byte) (string, error) {
	method, err := normalizeMethod(method)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &MalformedInputError{Field: "url", Value: rawURL, Err: err}
	}

	if u.Scheme == "" || u.Host == "" {
		return "", &MalformedInputError{Field: "url", Value: rawURL, Err: ErrRelativeURL}
	}

	query := queryParams(u)

	nonce, err := a.nonce()
	if err != nil {
		return "", &SigningError{Op: "generate nonce", Err: err}
	}

	oauthParams := a.protocolParams(method, nonce, body)

	signed := signedParams(oauthParams, query)

	signature, err := Sign(BaseString(method, BaseURL(u), signed), a.identity.key)
	if err != nil {
		return "", err
	}

	oauthParams.Set(ParamSignature, signature)

	return renderHeader(oauthParams), nil
}

// SignRequest sets the Authorization header on r. body must be the exact
// bytes that will be sent; r.Body is not read.
func (a *Authorizer) SignRequest(r *http.Request, body []byte) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	header, err := a.BuildHeader(method, r.URL.String(), body)
	if err != nil {
		return err
	}

	r.Header.Set("Authorization", header)

	return nil
}

// protocolParams assembles the oauth_* parameters in header order.
func (a *Authorizer) protocolParams(method, nonce string, body []byte) *Params {
	params := &Params{}

	params.Set(ParamConsumerKey, a.identity.consumerKey)
	params.Set(ParamNonce, nonce)
	params.Set(ParamSignatureMethod, MethodRSASHA256.String())
	params.Set(ParamTimestamp, strconv.FormatInt(a.now().Unix(), 10))
	params.Set(ParamVersion, Version)

	if needsBodyHash(method, body) {
		params.Set(ParamBodyHash, BodyHash(body))
	}

	return params
}

// signedParams returns the parameter set covered by the signature: the
// protocol parameters overlaid with the query parameters, then the body
// hash re-applied so the query cannot replace it.
func signedParams(protocol, query *Params) *Params {
	signed := protocol.Without(ParamSignature)
	signed.Merge(query)

	if hash, ok := protocol.Get(ParamBodyHash); ok {
		signed.Set(ParamBodyHash, hash)
	}

	return signed
}
