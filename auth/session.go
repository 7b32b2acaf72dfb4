// Package auth drives the /auth endpoints and owns the local credential
// lifecycle around them.
package auth

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/sautiwatch/ireporter-core/client"
	"github.com/sautiwatch/ireporter-core/models"
)

// TokenStore is the writable credential store the session maintains
type TokenStore interface {
	Set(token string)
	Clear()
}

// Session wraps the auth surface of the remote API
type Session struct {
	client client.Requester
	tokens TokenStore
}

// NewSession initializes a session over the given transport and store
func NewSession(c client.Requester, t TokenStore) *Session {
	return &Session{client: c, tokens: t}
}

type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type userPayload struct {
	User models.User `json:"user"`
}

// SignupInput carries the fields of a signup call
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account and stores the returned credential
func (s *Session) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	return s.authenticate(ctx, "/auth/signup", input)
}

// Login authenticates an existing account and stores the returned credential
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	return s.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (s *Session) authenticate(ctx context.Context, endpoint string, body interface{}) (*models.User, error) {
	env := s.client.Post(ctx, endpoint, body, false)
	if !env.Success {
		return nil, errors.New(env.Error)
	}
	var payload authPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, errors.New("unexpected response shape")
	}
	if s.tokens != nil {
		s.tokens.Set(payload.Token)
	}
	zap.S().Infow("session established", "userId", payload.User.ID)
	return &payload.User, nil
}

// Me fetches the account behind the current credential
func (s *Session) Me(ctx context.Context) (*models.User, error) {
	env := s.client.Get(ctx, "/auth/me", true)
	if !env.Success {
		return nil, errors.New(env.Error)
	}
	var payload userPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, errors.New("unexpected response shape")
	}
	return &payload.User, nil
}

// Logout tells the server best-effort and always clears the local
// credential. Dropping the credential locally is the operation that must
// succeed; a remote failure is logged and ignored.
func (s *Session) Logout(ctx context.Context) {
	if env := s.client.Post(ctx, "/auth/logout", nil, true); !env.Success {
		zap.S().Debugw("remote logout failed, clearing local credential anyway", "error", env.Error)
	}
	if s.tokens != nil {
		s.tokens.Clear()
	}
}

// MakeAdmin promotes a user. The remote call is best-effort: its failure is
// logged and ignored.
func (s *Session) MakeAdmin(ctx context.Context, userID string) error {
	if userID == "" {
		return models.NewValidationError(models.CodeEmptyID, "user id is required")
	}
	if env := s.client.Post(ctx, "/auth/make-admin", map[string]string{"userId": userID}, true); !env.Success {
		zap.S().Debugw("make-admin call failed", "userId", userID, "error", env.Error)
	}
	return nil
}
