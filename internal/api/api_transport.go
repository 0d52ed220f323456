package api

import "net/http"

// bearerTransport attaches the stored access credential to every outgoing
// request, the way the browser client's request interceptor did. A missing
// credential leaves the request anonymous; the server answers 401.
type bearerTransport struct {
	next   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.tokens.Access(req.Context())
	if err == nil && tok != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return t.next.RoundTrip(req)
}
