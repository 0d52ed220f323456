package api

import (
	"context"
	"net/http"
)

// GetProfile fetches the authenticated user's profile. Concurrent calls
// are collapsed into one request; every caller gets the same result.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	v, err, _ := c.sf.Do("profile", func() (any, error) {
		var p Profile
		if err := c.do(ctx, http.MethodGet, "/api/users/", nil, nil, &p); err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Profile), nil
}
