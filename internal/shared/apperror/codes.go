package apperror

const (
	// Caught before any request leaves the client
	CodeInvalidInput   = "INVALID_INPUT"
	CodeReadOnlyField  = "READ_ONLY_FIELD"
	CodeSubmitInFlight = "SUBMIT_IN_FLIGHT"

	// Request outcomes
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeServerRejected     = "SERVER_REJECTED"
	CodeNetworkUnreachable = "NETWORK_UNREACHABLE"

	// Local persistence
	CodeDraftSaveFailed = "DRAFT_SAVE_FAILED"

	CodeInternalError = "INTERNAL_ERROR"
)
