// Package binlookup is a client for the Mastercard BIN Lookup API.
//
// Every request is signed with OAuth 1.0a RSA-SHA256 by an oauth1.Transport
// and carries an X-Request-ID header for correlation. Non-200 responses are
// returned as *APIError, which matches ErrNotFound, ErrUnauthorized and the
// other status sentinels with errors.Is.
package binlookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/vitalvas/binlookup/config"
	"github.com/vitalvas/binlookup/oauth1"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. https://sandbox.api.mastercard.com.
	BaseURL string

	// Timeout bounds each request. Zero means no client timeout.
	Timeout time.Duration

	// Authorizer signs outgoing requests. Required.
	Authorizer *oauth1.Authorizer

	// Transport is the base transport. Defaults to a clone of
	// http.DefaultTransport.
	Transport *http.Transport
}

// Client calls the BIN Lookup API. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a Client from opts.
func New(opts Options) (*Client, error) {
	if opts.Authorizer == nil {
		return nil, oauth1.ErrNoAuthorizer
	}

	if opts.BaseURL == "" {
		return nil, ErrNoBaseURL
	}

	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("binlookup: base URL: %w", err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("binlookup: base URL %q: %w", opts.BaseURL, oauth1.ErrRelativeURL)
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Transport: oauth1.NewTransport(opts.Transport, opts.Authorizer),
			Timeout:   opts.Timeout,
		},
	}, nil
}

// NewFromConfig validates cfg, loads the signing identity from its key
// container and creates a Client.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	identity, err := oauth1.LoadIdentity(cfg.ConsumerKey, cfg.KeystorePath, cfg.KeystorePassword)
	if err != nil {
		return nil, err
	}

	authorizer, err := oauth1.NewAuthorizer(oauth1.Config{Identity: identity})
	if err != nil {
		return nil, err
	}

	return New(Options{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		Authorizer: authorizer,
	})
}

// LookupBIN returns issuer and product information for a 6 to 8 digit BIN.
func (c *Client) LookupBIN(ctx context.Context, bin string) (*BINInfo, error) {
	if err := ValidateBIN(bin); err != nil {
		return nil, err
	}

	var info BINInfo
	if err := c.do(ctx, http.MethodGet, "/bin-ranges/"+bin, nil, nil, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

// AccountRanges returns one page of account ranges. Zero values select the
// defaults page 1, size 25 and sort "-lowAccountRange".
func (c *Client) AccountRanges(ctx context.Context, page, size int, sort string) (*Page, error) {
	if page < 1 {
		page = DefaultPage
	}

	if size < 1 {
		size = DefaultSize
	}

	if sort == "" {
		sort = DefaultSort
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	query.Set("sort", sort)

	var out Page
	if err := c.do(ctx, http.MethodGet, "/bin-ranges", query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// BINDetails returns the account range bounded by low and high.
func (c *Client) BINDetails(ctx context.Context, low, high string) (*BINInfo, error) {
	if !isDigits(low) || !isDigits(high) {
		return nil, fmt.Errorf("%w: %q..%q", ErrInvalidRange, low, high)
	}

	query := url.Values{}
	query.Set("accountRangeLow", low)
	query.Set("accountRangeHigh", high)

	var info BINInfo
	if err := c.do(ctx, http.MethodGet, "/bin-ranges/details", query, nil, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

// SearchBINs searches account ranges with the criteria sent as query
// parameters.
func (c *Client) SearchBINs(ctx context.Context, params SearchParams) (*Page, error) {
	params = params.withDefaults()

	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("size", strconv.Itoa(params.Size))

	if params.IssuerName != "" {
		query.Set("issuerName", params.IssuerName)
	}

	if params.CountryCode != "" {
		query.Set("countryCode", params.CountryCode)
	}

	if params.ProductType != "" {
		query.Set("productType", params.ProductType)
	}

	var out Page
	if err := c.do(ctx, http.MethodGet, "/bin-ranges/search", query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// PostSearch searches account ranges with the criteria sent as a JSON body.
// The body is covered by oauth_body_hash.
func (c *Client) PostSearch(ctx context.Context, params SearchParams) (*Page, error) {
	var out Page
	if err := c.do(ctx, http.MethodPost, "/bin-ranges/search", nil, params.withDefaults(), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("binlookup: encode request: %w", err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("binlookup: %w", err)
	}

	requestID := uuid.NewString()

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	klog.V(2).InfoS("Sending request", "method", method, "url", u.String(), "requestID", requestID)

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("binlookup: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	klog.V(4).InfoS("Received response", "status", resp.StatusCode, "requestID", requestID, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp, requestID)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("binlookup: decode %s response: %w", path, err)
	}

	return nil
}

func newAPIError(resp *http.Response, requestID string) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var eb errorBody
	if json.Unmarshal(data, &eb) == nil {
		apiErr.Message = eb.text()
	}

	klog.V(2).InfoS("API error", "status", resp.StatusCode, "message", apiErr.Message, "requestID", requestID)

	return apiErr
}
