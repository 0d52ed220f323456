package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/caaaae/E-Leave/internal/localstore"
	"github.com/caaaae/E-Leave/internal/token"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte("server-only-secret"))
	assert.NoError(t, err)
	return raw
}

func TestPairRoundTrip(t *testing.T) {
	store := token.NewStore(localstore.NewMemoryStore())
	ctx := context.Background()

	_, err := store.Access(ctx)
	assert.ErrorIs(t, err, token.ErrNotLoggedIn)

	assert.NoError(t, store.SetPair(ctx, "acc", "ref"))

	acc, err := store.Access(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "acc", acc)

	ref, err := store.Refresh(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "ref", ref)
}

func TestClearIsIdempotent(t *testing.T) {
	store := token.NewStore(localstore.NewMemoryStore())
	ctx := context.Background()

	assert.NoError(t, store.SetPair(ctx, "acc", "ref"))
	assert.NoError(t, store.Clear(ctx))
	assert.NoError(t, store.Clear(ctx))

	_, err := store.Access(ctx)
	assert.ErrorIs(t, err, token.ErrNotLoggedIn)
}

func TestAccessClaimsWithoutSecret(t *testing.T) {
	store := token.NewStore(localstore.NewMemoryStore())
	ctx := context.Background()

	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{
		"username": "jcruz",
		"user_id":  float64(42),
		"exp":      exp.Unix(),
	})
	assert.NoError(t, store.SetPair(ctx, raw, "ref"))

	claims, err := store.AccessClaims(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "jcruz", claims.Username)
	assert.Equal(t, "42", claims.UserID)
	assert.WithinDuration(t, exp, claims.ExpiresAt, time.Second)
}
