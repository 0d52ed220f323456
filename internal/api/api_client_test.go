package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caaaae/E-Leave/internal/api"
	"github.com/caaaae/E-Leave/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Access(context.Context) (string, error) {
	return s.token, s.err
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(api.Profile{Username: "jcruz"})
	}))
	defer srv.Close()

	client := api.New(srv.URL, staticTokens{token: "tok-123"})
	p, err := client.GetProfile(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "jcruz", p.Username)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestAnonymousWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(api.TokenPair{Access: "a", Refresh: "r"})
	}))
	defer srv.Close()

	client := api.New(srv.URL, staticTokens{err: errors.New("not logged in")})
	pair, err := client.Login(context.Background(), "jcruz", "pw")
	assert.NoError(t, err)
	assert.Equal(t, "a", pair.Access)
	assert.Equal(t, "r", pair.Refresh)
	assert.Empty(t, gotAuth)
}

func TestLoginSendsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/token/", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"username":"jcruz","password":"pw"}`, string(body))
		_ = json.NewEncoder(w).Encode(api.TokenPair{Access: "a", Refresh: "r"})
	}))
	defer srv.Close()

	_, err := api.New(srv.URL, staticTokens{}).Login(context.Background(), "jcruz", "pw")
	assert.NoError(t, err)
}

func TestServerMessagePreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"end_date must not precede start_date"}`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL, staticTokens{token: "t"}).ListMyLeaves(context.Background())
	var ae *apperror.AppError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeServerRejected, ae.Code)
	assert.Equal(t, "end_date must not precede start_date", ae.Message)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
}

func TestDetailFallbackAndUnauthorizedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL, staticTokens{token: "t"}).ListAllLeaves(context.Background())
	assert.True(t, api.IsUnauthorized(err))
	var ae *apperror.AppError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "Given token not valid for any token type", ae.Message)
}

func TestGenericMessageWhenBodyUnreadable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL, staticTokens{token: "t"}).ListMyLeaves(context.Background())
	var ae *apperror.AppError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "Server error", ae.Message)
}

func TestUnreachableServerClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := api.New(srv.URL, staticTokens{token: "t"}).ListMyLeaves(context.Background())
	assert.Equal(t, apperror.CodeNetworkUnreachable, apperror.CodeOf(err))
}
