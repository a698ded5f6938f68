package identity

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/content-suite/content-suite/internal/authz"
	"github.com/content-suite/content-suite/internal/platform/httpx"
	"github.com/content-suite/content-suite/internal/shared"
)

// Middleware resolves bearer tokens into authenticated identities.
type Middleware struct {
	Service *Service
	Tokens  *TokenManager
	Logger  *slog.Logger
}

// RequireAuth verifies the Authorization header, loads the account and stores
// the identity in the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		id, err := m.Tokens.Verify(token)
		if err != nil {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		user, err := m.Service.Resolve(r.Context(), id)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("resolve token subject", slog.Any("error", err))
			}
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		ctx := authz.ContextWithIdentity(r.Context(), user.Identity())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
