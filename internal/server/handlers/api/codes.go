package api

const (
	CodeRateLimited   = "E_RATE_LIMITED"   // rate limit exceeded
	CodeInternalError = "E_INTERNAL_ERROR" // internal server error
)
