package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rentloop/handoff/internal/handoff/domain"
	"github.com/rentloop/handoff/internal/handoff/store"
	"github.com/rentloop/handoff/pkg/idx"
	"github.com/rentloop/handoff/pkg/qrtoken"
	"github.com/rentloop/handoff/pkg/slogx"
)

var (
	// ErrTokenSuperseded reports a cryptographically valid token whose
	// redemption id is no longer the live one for its action, either
	// because it was replaced by a reissue or never matched.
	ErrTokenSuperseded = errors.New("token superseded")

	// ErrAlreadyRedeemed reports a second redemption of an action that has
	// already been marked. Distinct from ErrTokenSuperseded so callers can
	// tell a replay from a stale token.
	ErrAlreadyRedeemed = errors.New("already redeemed")
)

// RedemptionService performs the stateful check-and-mark that consumes a
// token. The liveness and replay checks run inside one store transaction, so
// a live redemption id changing between Verify and Redeem is handled where
// it matters.
type RedemptionService struct {
	Store store.Store
	Codec *qrtoken.Codec

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// Verification is the result of a read-only token check.
type Verification struct {
	Claims    qrtoken.Claims
	ExpiresAt time.Time
	Remaining time.Duration
}

// Redemption reports a successful check-and-mark.
type Redemption struct {
	BookingID string
	Action    qrtoken.Action
}

// Verify checks a token's signature, structure and expiry without touching
// booking state. Suitable for client-side pre-checks; a token that verifies
// here may still fail redemption as superseded or already redeemed.
func (s *RedemptionService) Verify(ctx context.Context, callerID, token string) (Verification, error) {
	log := slogx.FromContext(ctx)

	if callerID == "" {
		return Verification{}, ErrUnauthenticated
	}
	if token == "" {
		return Verification{}, ErrInvalidRequest
	}

	now := s.now()
	claims, err := s.Codec.Verify(token, now)
	if err != nil {
		log.Warn("token verification failed", slog.Any("error", err))
		return Verification{}, err
	}

	return Verification{
		Claims:    claims,
		ExpiresAt: claims.ExpiresAt(),
		Remaining: claims.ExpiresAt().Sub(now),
	}, nil
}

// Redeem consumes a token: it verifies the token, then atomically confirms
// the booking exists, the token is still the live one for its action, and
// the action has not already been redeemed, before marking both mirrors
// redeemed and appending an audit event to each. Exactly one of any number
// of concurrent redemptions of the same token can succeed.
func (s *RedemptionService) Redeem(ctx context.Context, callerID, token string) (Redemption, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate caller and input.
	if callerID == "" {
		log.Warn("redemption attempted without caller identity")
		return Redemption{}, ErrUnauthenticated
	}
	if token == "" {
		return Redemption{}, ErrInvalidRequest
	}

	now := s.now()

	// 2. Pure verification: signature, structure, expiry.
	claims, err := s.Codec.Verify(token, now)
	if err != nil {
		log.Warn("redemption with unverifiable token", slog.Any("error", err))
		return Redemption{}, err
	}

	// 3. Check-and-mark inside one transaction across both mirrors.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		booking, err := tx.Bookings().GetBooking(ctx, claims.UserID, claims.AssetID, claims.BookingID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("redemption for unknown booking",
					slog.String("booking_id", claims.BookingID),
				)
				return ErrBookingNotFound
			}
			log.Error("failed to fetch booking", slog.Any("error", err))
			return err
		}

		// The stored id is authoritative; the token is just a carrier.
		liveID := booking.Tokens.LiveRedemptionID(claims.Action)
		if liveID == "" || liveID != claims.RedemptionID {
			log.Warn("redemption with superseded token",
				slog.String("booking_id", claims.BookingID),
				slog.String("action", string(claims.Action)),
			)
			return ErrTokenSuperseded
		}

		if booking.StatusFor(claims.Action).Done {
			log.Warn("redemption replay rejected",
				slog.String("booking_id", claims.BookingID),
				slog.String("action", string(claims.Action)),
			)
			return ErrAlreadyRedeemed
		}

		if err := tx.Bookings().MarkRedeemed(ctx, claims.UserID, claims.AssetID, claims.BookingID, claims.Action, callerID, now); err != nil {
			// The guard can only trip if another writer got between our
			// read and write, which the driver serializes away; treat it
			// as a replay regardless.
			if errors.Is(err, store.ErrConflict) {
				return ErrAlreadyRedeemed
			}
			if errors.Is(err, store.ErrNotFound) {
				return ErrBookingNotFound
			}
			log.Error("failed to mark redemption",
				slog.String("booking_id", claims.BookingID),
				slog.Any("error", err),
			)
			return err
		}

		ev := domain.Event{
			ID:           idx.New().String(),
			BookingID:    claims.BookingID,
			Action:       claims.Action,
			ActorID:      callerID,
			RedemptionID: claims.RedemptionID,
			VerifiedAt:   now,
		}
		if err := tx.Events().AppendEvent(ctx, claims.UserID, claims.AssetID, ev); err != nil {
			log.Error("failed to append audit event",
				slog.String("booking_id", claims.BookingID),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return Redemption{}, err
	}

	log.Info("token redeemed",
		slog.String("booking_id", claims.BookingID),
		slog.String("action", string(claims.Action)),
		slog.String("verified_by", callerID),
	)

	return Redemption{BookingID: claims.BookingID, Action: claims.Action}, nil
}

func (s *RedemptionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
