package apperror

import "net/http"

var (
	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required. Please log in again.",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to perform this action",
		http.StatusForbidden,
	)

	ErrNetworkUnreachable = New(
		CodeNetworkUnreachable,
		"No response received from the server. Please check your network connection.",
		0,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred. Please try again.",
		0,
	)

	ErrSubmitInFlight = New(
		CodeSubmitInFlight,
		"A submission is already in progress",
		0,
	)
)
