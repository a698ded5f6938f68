package authz

import (
	"log/slog"
	"net/http"

	"github.com/content-suite/content-suite/internal/platform/httpx"
	"github.com/content-suite/content-suite/internal/shared"
)

// Middleware wires authorization checks for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// Require ensures the authenticated identity may perform the operation.
func (m Middleware) Require(op Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromContext(r.Context())
			if !ok {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			if err := Authorize(ident.Role, op); err != nil {
				if m.Logger != nil {
					m.Logger.Warn("operation denied",
						slog.String("operation", string(op)),
						slog.String("role", string(ident.Role)),
						slog.String("path", r.URL.Path))
				}
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
