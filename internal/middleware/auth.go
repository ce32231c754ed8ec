package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/leogic/blog-backend/internal/api/httpx"
	"github.com/leogic/blog-backend/internal/auth"
)

// Actor is the identity resolved from a request's bearer token.
type Actor struct {
	ID   string
	Role string
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

type AuthMiddleware struct {
	tm *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tm: tm}
}

const notAuthorizedMsg = "Not authorized to access this route"

// Require resolves the bearer token into an Actor on the context. Missing,
// malformed, expired and badly signed tokens all get the same 401.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, notAuthorizedMsg)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := m.tm.Verify(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, notAuthorizedMsg)
			return
		}
		ctx := WithActor(r.Context(), Actor{ID: claims.UserID, Role: claims.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
