package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput        = "VALIDATION_ERROR"
	CodePastDate            = "PAST_DATE"
	CodeOverlap             = "OVERLAP"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeAlreadyProcessed    = "ALREADY_PROCESSED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
