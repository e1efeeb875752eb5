package binlookup

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched by APIError.Is.
var (
	ErrBadRequest   = errors.New("binlookup: bad request")
	ErrUnauthorized = errors.New("binlookup: unauthorized, check the API credentials")
	ErrForbidden    = errors.New("binlookup: access denied")
	ErrNotFound     = errors.New("binlookup: endpoint or resource not found")
	ErrRateLimited  = errors.New("binlookup: rate limit exceeded")
)

// Input validation errors.
var (
	ErrInvalidBIN   = errors.New("binlookup: BIN must be 6-8 digits")
	ErrInvalidRange = errors.New("binlookup: account range bounds must be numeric")
	ErrNoBaseURL    = errors.New("binlookup: base URL is required")
)

// APIError is returned for every non-200 response from the API.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("binlookup: HTTP %d: %s", e.StatusCode, msg)
}

// Is reports whether the status code maps to target.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return target == ErrBadRequest
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusForbidden:
		return target == ErrForbidden
	case http.StatusNotFound:
		return target == ErrNotFound
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	}

	return false
}

// errorBody covers both the flat {"message": ...} form and the gateway's
// {"Errors": {"Error": [...]}} envelope.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Errors  struct {
		Error []struct {
			ReasonCode  string `json:"ReasonCode"`
			Description string `json:"Description"`
		} `json:"Error"`
	} `json:"Errors"`
}

func (b errorBody) text() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Error != "":
		return b.Error
	case len(b.Errors.Error) > 0:
		return b.Errors.Error[0].Description
	}

	return ""
}
