// Package auth holds the per-session auth token and proxies login, register
// and current-user lookups to the upstream API. Presence of a stored token is
// the only client-side authentication signal; validity is the upstream's call.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
	"github.com/Mokhaled2004/SoupShop/internal/repository/session"
	"github.com/Mokhaled2004/SoupShop/internal/upstream"
)

const tokenKeyPrefix = "token:"

// Client is the slice of the upstream API the auth flow needs.
type Client interface {
	Login(ctx context.Context, in upstream.LoginInput) (*upstream.AuthResult, error)
	Register(ctx context.Context, in upstream.RegisterInput) (*upstream.AuthResult, error)
	Me(ctx context.Context, token string) (*domain.User, error)
}

type Service struct {
	store  session.Store
	client Client
}

func New(store session.Store, client Client) *Service {
	return &Service{store: store, client: client}
}

// Login exchanges credentials upstream and binds the returned token to the
// session. A failed login leaves any existing token untouched.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (*domain.User, error) {
	result, err := s.client.Login(ctx, upstream.LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, tokenKeyPrefix+sessionID, []byte(result.Token)); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &result.User, nil
}

// Register creates an upstream account and logs the session in.
func (s *Service) Register(ctx context.Context, sessionID string, in upstream.RegisterInput) (*domain.User, error) {
	result, err := s.client.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, tokenKeyPrefix+sessionID, []byte(result.Token)); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &result.User, nil
}

// Logout discards the session's token.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, tokenKeyPrefix+sessionID)
}

// Token returns the session's stored token, or domain.ErrUnauthenticated.
func (s *Service) Token(ctx context.Context, sessionID string) (string, error) {
	raw, err := s.store.Get(ctx, tokenKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthenticated
		}
		return "", err
	}
	if len(raw) == 0 {
		return "", domain.ErrUnauthenticated
	}
	return string(raw), nil
}

// IsAuthenticated reports whether the session holds a token.
func (s *Service) IsAuthenticated(ctx context.Context, sessionID string) bool {
	_, err := s.Token(ctx, sessionID)
	return err == nil
}

// CurrentUser resolves the session's user via the upstream /auth/me endpoint.
// A token the upstream no longer accepts is dropped from the session.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	token, err := s.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	user, err := s.client.Me(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			_ = s.store.Delete(ctx, tokenKeyPrefix+sessionID)
		}
		return nil, err
	}
	return user, nil
}
