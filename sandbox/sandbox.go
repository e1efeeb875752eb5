// Package sandbox implements an in-process BIN Lookup gateway that serves
// demo data to OAuth 1.0a RSA-SHA256 signed requests.
//
// Routes:
//
//	GET  /health                  unauthenticated liveness and sample BINs
//	GET  /bin-ranges              paged account ranges (page, size, sort)
//	GET  /bin-ranges/{bin}        BIN lookup by the first six digits
//	GET  /bin-ranges/details      exact range (accountRangeLow, accountRangeHigh)
//	GET  /bin-ranges/search       filtered ranges from query parameters
//	POST /bin-ranges/search       filtered ranges from a JSON body
//
// Errors use the gateway envelope {"Errors": {"Error": [...]}}.
package sandbox

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"k8s.io/klog/v2"

	"github.com/vitalvas/binlookup/oauth1"
)

// ErrUnknownConsumer is returned by the key resolver for unregistered
// consumer keys.
var ErrUnknownConsumer = errors.New("sandbox: unknown consumer key")

// ErrNoConsumers is returned by New when no consumer is registered.
var ErrNoConsumers = errors.New("sandbox: at least one consumer is required")

// Config configures a Server.
type Config struct {
	// Consumers maps consumer keys to the RSA public keys their requests
	// must verify against.
	Consumers map[string]*rsa.PublicKey

	// MaxAge bounds the oauth_timestamp skew. Zero disables the check.
	MaxAge time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Server is an http.Handler serving the sandbox API.
type Server struct {
	router *mux.Router
}

// New creates a Server from cfg.
func New(cfg Config) (*Server, error) {
	if len(cfg.Consumers) == 0 {
		return nil, ErrNoConsumers
	}

	consumers := make(map[string]*rsa.PublicKey, len(cfg.Consumers))
	for k, v := range cfg.Consumers {
		consumers[k] = v
	}

	auth, err := oauth1.Middleware(oauth1.MiddlewareConfig{
		Verify: oauth1.VerifyConfig{
			Resolver: func(_ *http.Request, consumerKey string) (*rsa.PublicKey, error) {
				pub, ok := consumers[consumerKey]
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrUnknownConsumer, consumerKey)
				}

				return pub, nil
			},
			MaxAge: cfg.MaxAge,
			Now:    cfg.Now,
		},
		OnError: rejectUnauthorized,
	})
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware(), recoveryMiddleware(), logMiddleware())
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "endpoint not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(auth)
	api.HandleFunc("/bin-ranges", handleRanges).Methods(http.MethodGet)
	api.HandleFunc("/bin-ranges/details", handleDetails).Methods(http.MethodGet)
	api.HandleFunc("/bin-ranges/search", handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/bin-ranges/search", handleSearchBody).Methods(http.MethodPost)
	api.HandleFunc("/bin-ranges/{bin}", handleLookup).Methods(http.MethodGet)

	return &Server{router: r}, nil
}

// ServeHTTP dispatches to the sandbox routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func rejectUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	klog.V(2).InfoS("Rejected request", "path", r.URL.Path, "err", err, "requestID", RequestIDFromContext(r.Context()))
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		klog.InfoS("Sandbox listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
