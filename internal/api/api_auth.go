package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token pair. Persisting the pair is the
// caller's job; this client does not write to storage.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	var pair TokenPair
	err := c.doJSON(ctx, http.MethodPost, "/api/token/", LoginRequest{
		Username: username,
		Password: password,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates an account. Registration is an anonymous endpoint; the
// user logs in afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/user/register/", req, nil)
}
