package oauth1

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

type consumerKeyCtx struct{}

// ConsumerKeyFromContext returns the consumer key authenticated by
// Middleware, or an empty string.
func ConsumerKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(consumerKeyCtx{}).(string); ok {
		return key
	}

	return ""
}

// MiddlewareConfig configures the server-side verification middleware.
type MiddlewareConfig struct {
	// Verify holds the key resolver and timestamp window.
	Verify VerifyConfig

	// OnError writes the response for a rejected request. Defaults to an
	// empty 401.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware returns a mux.MiddlewareFunc that verifies OAuth 1.0a
// RSA-SHA256 signatures on incoming requests. The verified consumer key is
// available to handlers through ConsumerKeyFromContext.
//
// It returns ErrNoResolver if VerifyConfig.Resolver is nil.
func Middleware(cfg MiddlewareConfig) (mux.MiddlewareFunc, error) {
	if cfg.Verify.Resolver == nil {
		return nil, ErrNoResolver
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}

	verifyCfg := cfg.Verify

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			consumerKey, err := verifyRequest(r, verifyCfg)
			if err != nil {
				onError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), consumerKeyCtx{}, consumerKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

func defaultOnError(w http.ResponseWriter, _ *http.Request, _ error) {
	w.WriteHeader(http.StatusUnauthorized)
}
