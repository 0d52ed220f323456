package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/caaaae/E-Leave/internal/shared/apperror"
)

// errorEnvelope covers both message styles the server produces: "message"
// from the leave endpoints and "detail" from the auth framework.
type errorEnvelope struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func transportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperror.Wrap(err, apperror.CodeNetworkUnreachable, apperror.ErrNetworkUnreachable.Message, 0)
}

// serverError maps a non-2xx response to the most specific message
// available: server-provided text when present, else a generic one.
func serverError(status int, body []byte) error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)

	msg := env.Message
	if msg == "" {
		msg = env.Detail
	}

	code := apperror.CodeServerRejected
	switch status {
	case http.StatusUnauthorized:
		code = apperror.CodeUnauthorized
		if msg == "" {
			msg = apperror.ErrUnauthorized.Message
		}
	case http.StatusForbidden:
		code = apperror.CodeForbidden
		if msg == "" {
			msg = apperror.ErrForbidden.Message
		}
	case http.StatusNotFound:
		code = apperror.CodeNotFound
	}
	if msg == "" {
		msg = "Server error"
	}
	return apperror.New(code, msg, status)
}

// IsUnauthorized reports whether err is a 401 rejection.
func IsUnauthorized(err error) bool {
	return apperror.IsCode(err, apperror.CodeUnauthorized)
}
