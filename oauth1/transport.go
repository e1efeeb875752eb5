package oauth1

import "net/http"

// Transport is an http.RoundTripper that adds an OAuth 1.0a RSA-SHA256
// Authorization header to every outgoing request.
//
// Each attempt is signed with a fresh nonce and timestamp. Retries, if any,
// belong to the caller.
type Transport struct {
	base       http.RoundTripper
	authorizer *Authorizer
}

// NewTransport wraps base with OAuth 1.0a signing. A nil base means a private
// clone of http.DefaultTransport.
func NewTransport(base *http.Transport, a *Authorizer) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:       rt,
		authorizer: a,
	}
}

// RoundTrip signs a copy of req and sends it. The caller's request and body
// are left untouched; the body hash is computed from a GetBody copy when one
// is available.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.authorizer == nil {
		if req.Body != nil {
			req.Body.Close()
		}

		return nil, ErrNoAuthorizer
	}

	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	body, err := readAndRestoreBody(clone)
	if err != nil {
		return nil, err
	}

	if err := t.authorizer.SignRequest(clone, body); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
