package handoffsdk

import "time"

// ErrorResponse is the standard error body returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "token_superseded")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// IssueTokensRequest identifies the booking to issue a token pair for.
// It is also the request shape for reissue, which replaces the live pair.
type IssueTokensRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	UserID    string `json:"user_id"    validate:"required"`
	AssetID   string `json:"asset_id"   validate:"required"`

	// ExpiresInSec, when positive, gives both tokens a fixed lifetime from
	// now instead of the booked-date-derived expiry windows.
	ExpiresInSec int64 `json:"expires_in,omitempty" validate:"omitempty,gt=0"`
}

// TokenPair holds the two signed token strings. They are returned exactly
// once; the service cannot reconstruct them afterwards.
type TokenPair struct {
	Handover string `json:"handover"`
	Return   string `json:"return"`
}

// ExpiryPair holds the matching expiry instants.
type ExpiryPair struct {
	Handover time.Time `json:"handover"`
	Return   time.Time `json:"return"`
}

// IssueTokensResponse is returned from issue and reissue.
type IssueTokensResponse struct {
	Tokens   TokenPair  `json:"tokens"`
	Expiries ExpiryPair `json:"expiries"`
}

// VerifyTokenRequest carries a token for read-only verification.
type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyTokenResponse reports a token's validity without consuming it. A
// valid token can still fail redemption if it has been superseded or its
// action already redeemed.
type VerifyTokenResponse struct {
	Valid       bool      `json:"valid"`
	Action      string    `json:"action"`
	BookingID   string    `json:"booking_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	RemainingMS int64     `json:"remaining_ms"`
}

// RedeemTokenRequest carries a token to consume.
type RedeemTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// RedeemTokenResponse reports a successful redemption.
type RedeemTokenResponse struct {
	BookingID string `json:"booking_id"`
	Action    string `json:"action"`
}

// CreateBookingRequest registers a booking with the service so tokens can be
// issued against it. Dates are the booked days; they may be empty, but
// date-derived token expiry then becomes unavailable for this booking.
type CreateBookingRequest struct {
	BookingID   string      `json:"booking_id"    validate:"required"`
	OwnerUserID string      `json:"owner_user_id" validate:"required"`
	AssetID     string      `json:"asset_id"      validate:"required"`
	Dates       []time.Time `json:"dates,omitempty"`
}

// CreateBookingResponse echoes the registered booking.
type CreateBookingResponse struct {
	BookingID   string      `json:"booking_id"`
	OwnerUserID string      `json:"owner_user_id"`
	AssetID     string      `json:"asset_id"`
	Dates       []time.Time `json:"dates,omitempty"`
}

// EventRecord is one entry of a booking's redemption audit trail.
type EventRecord struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	Action       string    `json:"action"`
	ActorID      string    `json:"actor_id"`
	RedemptionID string    `json:"redemption_id"`
	VerifiedAt   time.Time `json:"verified_at"`
}

// ListEventsResponse is the audit trail in append order.
type ListEventsResponse struct {
	Events []EventRecord `json:"events"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned from the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
