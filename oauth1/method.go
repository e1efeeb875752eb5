package oauth1

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// SignatureMethod identifies the oauth_signature_method value.
type SignatureMethod string

// MethodRSASHA256 is RSASSA-PKCS1-v1_5 using SHA-256, the only method this
// package produces and accepts.
const MethodRSASHA256 SignatureMethod = "RSA-SHA256"

// String returns the value placed in oauth_signature_method.
func (m SignatureMethod) String() string {
	return string(m)
}

// Version is the fixed oauth_version value.
const Version = "1.0"

// Protocol parameter names.
const (
	ParamConsumerKey     = "oauth_consumer_key"
	ParamNonce           = "oauth_nonce"
	ParamSignatureMethod = "oauth_signature_method"
	ParamTimestamp       = "oauth_timestamp"
	ParamVersion         = "oauth_version"
	ParamBodyHash        = "oauth_body_hash"
	ParamSignature       = "oauth_signature"
)

// knownMethods lists the HTTP verbs accepted for signing.
var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
}

// normalizeMethod uppercases method and checks it is a recognized verb.
func normalizeMethod(method string) (string, error) {
	if method == "" || strings.IndexFunc(method, isNotToken) != -1 {
		return "", &MalformedInputError{
			Field: "method",
			Value: method,
			Err:   fmt.Errorf("%w: not an HTTP token", ErrUnknownMethod),
		}
	}

	upper := strings.ToUpper(method)
	if _, ok := knownMethods[upper]; !ok {
		return "", &MalformedInputError{Field: "method", Value: method, Err: ErrUnknownMethod}
	}

	return upper, nil
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
