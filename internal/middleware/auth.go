package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskbox/taskbox-go/internal/model"
)

// AuthHeader is the request header carrying the bearer token.
const AuthHeader = "x-auth"

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// UserResolver resolves a bearer token to its user. Satisfied by
// *service.AuthService.
type UserResolver interface {
	UserByToken(ctx context.Context, token string) (*model.User, error)
}

// TokenAuth returns middleware that gates requests on the x-auth header.
// A missing or unresolvable token short-circuits with 401 and the handler
// is never invoked; otherwise the user and token are attached to the
// request context.
func TokenAuth(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AuthHeader)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing auth token")
				return
			}

			user, err := resolver.UserByToken(r.Context(), token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid auth token")
				return
			}

			ctx := WithToken(WithUser(r.Context(), user), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// WithToken returns a context carrying the token the request authenticated
// with.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

// TokenFromContext extracts the token the current request authenticated with.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
