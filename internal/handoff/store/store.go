package store

import (
	"context"
	"errors"
	"time"

	"github.com/rentloop/handoff/internal/handoff/domain"
	"github.com/rentloop/handoff/pkg/qrtoken"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports a guarded mutation that found the row in a state
	// it refused to touch (e.g. marking an already-redeemed action).
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Booking documents are mirrored under two keys so the same
// record is reachable from the owner's and the asset's side; every
// implementation must treat the pair as one unit — reads require both
// mirrors, writes touch both or neither.
type Store interface {
	Bookings() Bookings
	Events() Events

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. This is the recommended entry point
	// for multi-step operations that must be atomic (token issuance,
	// redemption).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Bookings interface {
	// CreateBooking inserts both mirror rows for a new booking.
	CreateBooking(ctx context.Context, b domain.Booking) error

	// GetBooking reads the aggregate addressed by its owner, asset and id.
	// ErrNotFound if either mirror row is missing.
	GetBooking(ctx context.Context, ownerUserID, assetID, bookingID string) (domain.Booking, error)

	// SetLiveTokens replaces the live redemption ids for both actions on
	// both mirrors, superseding any previously issued tokens.
	SetLiveTokens(ctx context.Context, ownerUserID, assetID, bookingID, handoverID, returnID string, createdAt time.Time) error

	// MarkRedeemed flips the per-action status to redeemed on both mirrors.
	// The statement is guarded on the current status: ErrConflict if the
	// action was already redeemed, ErrNotFound if the booking is missing.
	MarkRedeemed(ctx context.Context, ownerUserID, assetID, bookingID string, action qrtoken.Action, verifiedBy string, at time.Time) error
}

type Events interface {
	// AppendEvent writes one audit entry under each mirror of the booking.
	AppendEvent(ctx context.Context, ownerUserID, assetID string, ev domain.Event) error

	// ListEvents returns a booking's audit trail in append order, read from
	// the owner mirror.
	ListEvents(ctx context.Context, ownerUserID, bookingID string) ([]domain.Event, error)
}
