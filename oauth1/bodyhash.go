package oauth1

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
)

// BodyHash returns the oauth_body_hash value for body: the standard
// base64 encoding of its SHA-256 digest.
func BodyHash(body []byte) string {
	sum := sha256.Sum256(body)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// needsBodyHash reports whether oauth_body_hash is part of the parameter
// set: only for POST and PUT with a non-empty body.
func needsBodyHash(method string, body []byte) bool {
	if len(body) == 0 {
		return false
	}

	return method == http.MethodPost || method == http.MethodPut
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be consumed again.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
