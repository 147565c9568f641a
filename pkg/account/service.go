// Package account implements user registration and login on top of the
// credential hasher, the token service, and a user store.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aufgabe-dev/aufgabe/pkg/api"
	"github.com/aufgabe-dev/aufgabe/pkg/auth"
	"github.com/aufgabe-dev/aufgabe/pkg/observability"
	"github.com/aufgabe-dev/aufgabe/pkg/storage"
)

// MsgUserExists is returned when registering an already-taken email.
const MsgUserExists = "User already exists"

// MsgInvalidCredentials is the single login failure message. Unknown email
// and wrong password produce the identical response so that login attempts
// cannot be used to probe which addresses are registered.
const MsgInvalidCredentials = "Invalid credentials"

// Service provides registration and login.
type Service struct {
	users  storage.UserStore
	hasher *auth.Hasher
	tokens *auth.TokenService
}

// NewService creates an account service.
func NewService(users storage.UserStore, hasher *auth.Hasher, tokens *auth.TokenService) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new account. The email is lowercased before storage so
// lookups stay case-insensitive, and the password is stored only as a bcrypt
// digest. A duplicate email yields a 400 validation error.
func (s *Service) Register(ctx context.Context, req api.RegisterRequest) (*api.PublicUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("hashing password: %v", err))
	}

	user := &api.User{
		ID:           api.NewUserID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: digest,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, api.NewValidationError(MsgUserExists)
		}
		return nil, api.NewServerError(fmt.Sprintf("creating user: %v", err))
	}

	observability.UsersRegisteredTotal.Inc()

	public := user.Public()
	return &public, nil
}

// Login verifies credentials and issues a signed token. The password is
// always checked even when it cannot match, so the failure path does not
// differ observably between unknown emails and wrong passwords.
func (s *Service) Login(ctx context.Context, req api.LoginRequest) (*api.AuthData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Burn a comparison against a static digest to keep the timing
			// of the unknown-email path close to the wrong-password path.
			s.hasher.Verify(req.Password, dummyDigest)
			observability.AuthFailuresTotal.WithLabelValues("bad_credentials").Inc()
			return nil, api.NewAuthError(MsgInvalidCredentials)
		}
		return nil, api.NewServerError(fmt.Sprintf("looking up user: %v", err))
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		observability.AuthFailuresTotal.WithLabelValues("bad_credentials").Inc()
		return nil, api.NewAuthError(MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, api.NewServerError(fmt.Sprintf("issuing token: %v", err))
	}

	return &api.AuthData{Token: token, User: user.Public()}, nil
}

// dummyDigest is a bcrypt digest of an unguessable throwaway value, used
// only to equalize timing when the email is unknown.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
