package domain

import (
	"time"

	"github.com/rentloop/handoff/pkg/qrtoken"
)

// Event is one entry in a booking's append-only audit trail. Exactly one is
// recorded per mirror per successful redemption and entries are never
// mutated afterwards.
type Event struct {
	ID           string // ULID, assigned by the service
	BookingID    string
	Action       qrtoken.Action
	ActorID      string // authenticated caller who scanned the code
	RedemptionID string
	VerifiedAt   time.Time
}
