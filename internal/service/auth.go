package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskbox/taskbox-go/internal/crypto"
	"github.com/taskbox/taskbox-go/internal/model"
	"github.com/taskbox/taskbox-go/internal/repository"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailInvalid       = errors.New("email is not valid")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// AuthService handles registration, login and token-based identity.
type AuthService struct {
	users      *repository.UserRepository
	jwtSecret  string
	bcryptCost int
}

// NewAuthService creates a new AuthService. The signing secret and hash cost
// come from process configuration, loaded once at startup.
func NewAuthService(users *repository.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  jwtSecret,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account and issues its first auth token.
// The password is hashed exactly once, before the user is persisted.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (*model.User, string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if !validEmail(email) {
		return nil, "", ErrEmailInvalid
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := crypto.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.GenerateAuthToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates a user by credentials and issues a new auth token.
// Unknown email and wrong password yield the same failure, so a caller
// cannot learn which half was wrong.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateAuthToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// UserByToken resolves a bearer token to its user. The token must both
// verify against the signing secret and still be present in the user's
// token list with the auth scope; either failure is ErrUnauthenticated.
func (s *AuthService) UserByToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := crypto.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	if claims.Access != model.AccessAuth {
		return nil, ErrUnauthenticated
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetByIDWithToken(ctx, id, token, model.AccessAuth)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

// GenerateAuthToken issues an auth-scoped token for the user, appends it to
// the user's token list and persists it. Safe to call repeatedly; each call
// adds another concurrently valid token.
func (s *AuthService) GenerateAuthToken(ctx context.Context, user *model.User) (string, error) {
	token, err := crypto.GenerateToken(user.ID.Hex(), model.AccessAuth, s.jwtSecret)
	if err != nil {
		return "", err
	}

	entry := model.AuthToken{Access: model.AccessAuth, Token: token}
	if err := s.users.PushToken(ctx, user.ID, entry); err != nil {
		return "", err
	}

	user.Tokens = append(user.Tokens, entry)
	return token, nil
}

// Logout removes the given token from the user's token list, revoking that
// session while leaving other sessions live.
func (s *AuthService) Logout(ctx context.Context, user *model.User, token string) error {
	return s.users.PullToken(ctx, user.ID, token)
}

// validEmail reports whether s is a plain address like user@example.com.
// mail.ParseAddress also accepts the "Name <addr>" form, which is rejected
// here by requiring the parsed address to round-trip to the input.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
