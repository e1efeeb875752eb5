// Package oauth1 signs HTTP requests with one-legged OAuth 1.0a using the
// RSA-SHA256 signature method (RSASSA-PKCS1-v1_5 over SHA-256), as required
// by API gateways that authenticate callers by signed requests instead of
// bearer tokens.
//
// It provides client-side signing (Authorizer, Transport) and server-side
// verification (VerifyRequest, Middleware).
//
// # Loading the Signing Identity
//
// The private key comes from a password-protected PKCS#12 container. Load
// it once and share the resulting Identity:
//
//	id, err := oauth1.LoadIdentity(consumerKey, "/etc/binlookup/consumer.p12", password)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// IdentityLoader defers loading to first use and guarantees a single load
// across goroutines:
//
//	load := oauth1.IdentityLoader(consumerKey, path, password)
//	id, err := load()
//
// # Building Headers
//
// An Authorizer turns a method, URL and optional body into an
// Authorization header value:
//
//	a, err := oauth1.NewAuthorizer(oauth1.Config{Identity: id})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	header, err := a.BuildHeader(http.MethodPost, "https://api.example.com/bin-ranges/search", body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	req.Header.Set("Authorization", header)
//
// Every call draws a fresh nonce and timestamp; a header must not be reused.
// Query parameters of the URL are covered by the signature but are not
// rendered in the header. For POST and PUT requests with a body,
// oauth_body_hash carries the base64 SHA-256 digest of the body.
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs all outgoing
// requests. Pass an *http.Transport to configure proxy, TLS, and timeout
// settings, or nil for defaults:
//
//	client := &http.Client{
//	    Transport: oauth1.NewTransport(nil, a),
//	    Timeout:   30 * time.Second,
//	}
//
// # Server Middleware
//
// Middleware returns a mux.MiddlewareFunc that verifies signatures on
// incoming requests:
//
//	mw, err := oauth1.Middleware(oauth1.MiddlewareConfig{
//	    Verify: oauth1.VerifyConfig{
//	        Resolver: resolver,
//	        MaxAge:   5 * time.Minute,
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	router.Use(mw)
//
// # Errors
//
// Key loading fails with *KeyLoadError, signing with *SigningError and
// unusable methods or URLs with *MalformedInputError. Match them with
// errors.As; specific causes are sentinel errors matched with errors.Is.
package oauth1
