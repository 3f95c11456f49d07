package http

import (
	"context"
	"net/http"

	commonhttp "github.com/ardanovsky/todo-service/internal/common/http"
	"github.com/ardanovsky/todo-service/internal/common/logger"
	"github.com/ardanovsky/todo-service/internal/observability/metrics"
)

// AuthHeader is the header carrying the bearer token, on requests and on
// login/registration responses.
const AuthHeader = "x-auth"

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (userID, purpose string, err error)
}

// Principal is the authenticated identity bound into the request context.
// The raw token is kept so the logout handler can revoke exactly it.
type Principal struct {
	UserID string
	Token  string
}

type contextKey string

const principalKey contextKey = "auth_principal"

// Guard authenticates each request independently: absent or unverifiable
// tokens terminate with 401, nothing else. There are no retries and no
// refresh path.
func Guard(verifier TokenVerifier, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AuthHeader)
			if token == "" {
				metrics.AuthGuardRejections.Inc()
				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"action": "guard_missing_token",
				}).Warn("auth failed: missing token")
				commonhttp.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, _, err := verifier.Verify(r.Context(), token)
			if err != nil {
				metrics.AuthGuardRejections.Inc()
				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"action": "guard_invalid_token",
				}).Warn("auth failed: invalid token")
				commonhttp.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, Principal{
				UserID: userID,
				Token:  token,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
