// Package token persists the bearer credentials issued at login under
// fixed local storage keys.
package token

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/caaaae/E-Leave/internal/localstore"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessKey  = "access_token"
	refreshKey = "refresh_token"
)

var ErrNotLoggedIn = errors.New("token: not logged in")

type Store struct {
	kv localstore.Store
}

func NewStore(kv localstore.Store) *Store {
	return &Store{kv: kv}
}

// SetPair stores both credentials. The refresh credential is kept only so a
// future session can be re-established; this client does not refresh.
func (s *Store) SetPair(ctx context.Context, access, refresh string) error {
	if err := s.kv.Set(ctx, accessKey, access); err != nil {
		return err
	}
	return s.kv.Set(ctx, refreshKey, refresh)
}

func (s *Store) Access(ctx context.Context) (string, error) {
	tok, err := s.kv.Get(ctx, accessKey)
	if errors.Is(err, localstore.ErrNotFound) {
		return "", ErrNotLoggedIn
	}
	return tok, err
}

func (s *Store) Refresh(ctx context.Context) (string, error) {
	tok, err := s.kv.Get(ctx, refreshKey)
	if errors.Is(err, localstore.ErrNotFound) {
		return "", ErrNotLoggedIn
	}
	return tok, err
}

// Clear removes both credentials. Safe to call when already logged out.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, accessKey); err != nil {
		return err
	}
	return s.kv.Delete(ctx, refreshKey)
}

// Claims is the subset of access-token claims the client displays.
type Claims struct {
	Username  string
	UserID    string
	ExpiresAt time.Time
}

// AccessClaims decodes the stored access token without verifying its
// signature. The client never holds the signing secret; verification is the
// server's job on every request.
func (s *Store) AccessClaims(ctx context.Context) (*Claims, error) {
	raw, err := s.Access(ctx)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, err
	}

	out := &Claims{}
	if v, ok := claims["username"].(string); ok {
		out.Username = v
	}
	switch v := claims["user_id"].(type) {
	case string:
		out.UserID = v
	case float64:
		out.UserID = strconv.FormatInt(int64(v), 10)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
