package domain

import (
	"time"

	"github.com/rentloop/handoff/pkg/qrtoken"
)

// Booking is the logical booking aggregate. Storage keeps it as two mirrored
// document rows (owner-keyed and asset-keyed); the store layer hides that and
// callers only ever see this merged view.
type Booking struct {
	ID          string
	OwnerUserID string
	AssetID     string

	// Dates are the booked days in ascending order. Date-derived token
	// expiries are computed from the first and last entry.
	Dates []time.Time

	Tokens     TokenState
	HandedOver RedemptionStatus
	Returned   RedemptionStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenState holds the currently-live redemption identifier per action. The
// signed token strings themselves are never stored; possession of the token
// is the credential and the caller who received it at issuance is the only
// holder.
type TokenState struct {
	HandoverRedemptionID string
	ReturnRedemptionID   string
	CreatedAt            *time.Time
}

// LiveRedemptionID returns the authoritative redemption id for the action,
// or "" when no token has been issued for it.
func (t TokenState) LiveRedemptionID(action qrtoken.Action) string {
	switch action {
	case qrtoken.ActionHandover:
		return t.HandoverRedemptionID
	case qrtoken.ActionReturn:
		return t.ReturnRedemptionID
	default:
		return ""
	}
}

// RedemptionStatus records the one-way unredeemed -> redeemed transition for
// a single action. There is no reverse transition.
type RedemptionStatus struct {
	Done       bool
	UpdatedAt  *time.Time
	VerifiedBy string
}

// StatusFor returns the redemption status for the given action.
func (b Booking) StatusFor(action qrtoken.Action) RedemptionStatus {
	if action == qrtoken.ActionReturn {
		return b.Returned
	}
	return b.HandedOver
}

// FirstDate and LastDate bound the booked range. Both return the zero time
// for a booking without dates.

func (b Booking) FirstDate() time.Time {
	if len(b.Dates) == 0 {
		return time.Time{}
	}
	return b.Dates[0]
}

func (b Booking) LastDate() time.Time {
	if len(b.Dates) == 0 {
		return time.Time{}
	}
	return b.Dates[len(b.Dates)-1]
}
