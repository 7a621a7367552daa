package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskbox/taskbox-go/internal/model"
)

type stubResolver struct {
	user *model.User
	err  error

	calledWith string
}

func (s *stubResolver) UserByToken(ctx context.Context, token string) (*model.User, error) {
	s.calledWith = token
	return s.user, s.err
}

func TestTokenAuth_MissingHeader(t *testing.T) {
	resolver := &stubResolver{}
	handler := TokenAuth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be invoked without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if resolver.calledWith != "" {
		t.Error("resolver should not be called without a token")
	}
}

func TestTokenAuth_InvalidToken(t *testing.T) {
	resolver := &stubResolver{err: errors.New("unauthenticated")}
	handler := TokenAuth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be invoked for an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(AuthHeader, "bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if resolver.calledWith != "bad-token" {
		t.Errorf("resolver called with %q, want %q", resolver.calledWith, "bad-token")
	}
}

func TestTokenAuth_ValidToken(t *testing.T) {
	user := &model.User{ID: primitive.NewObjectID(), Email: "test@example.com"}
	resolver := &stubResolver{user: user}

	var gotUser *model.User
	var gotToken string
	handler := TokenAuth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		gotToken, _ = TokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(AuthHeader, "good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotUser != user {
		t.Error("authenticated user not attached to request context")
	}
	if gotToken != "good-token" {
		t.Errorf("token in context = %q, want %q", gotToken, "good-token")
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	if _, ok := UserFromContext(context.Background()); ok {
		t.Error("UserFromContext() ok = true for empty context")
	}
	if _, ok := TokenFromContext(context.Background()); ok {
		t.Error("TokenFromContext() ok = true for empty context")
	}
}
