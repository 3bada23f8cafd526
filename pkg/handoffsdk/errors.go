package handoffsdk

import "fmt"

// Error codes returned by the service. Codec-level failures are surfaced as
// distinct codes but all share invalid-argument semantics; only
// ErrorCodeServerError is retryable.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeMalformedToken    = "malformed_token"
	ErrorCodeBadSignature      = "bad_signature"
	ErrorCodeInvalidPayload    = "invalid_payload"
	ErrorCodeTokenExpired      = "token_expired"
	ErrorCodeBookingNotFound   = "booking_not_found"
	ErrorCodeBookingExists     = "booking_exists"
	ErrorCodeNoBookingDates    = "no_booking_dates"
	ErrorCodeTokenSuperseded   = "token_superseded"
	ErrorCodeAlreadyRedeemed   = "already_redeemed"
	ErrorCodeServerError       = "server_error"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("handoff: %s (http %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("handoff: %s: %s (http %d)", e.Code, e.Description, e.StatusCode)
}

// Retryable reports whether the whole operation is safe to retry. Everything
// except transient server errors is deterministic for the same input.
func (e *APIError) Retryable() bool {
	return e.Code == ErrorCodeServerError
}
