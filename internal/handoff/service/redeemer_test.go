package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentloop/handoff/internal/handoff/domain"
	"github.com/rentloop/handoff/pkg/qrtoken"
)

// redemptionFixture wires an issuer and redeemer over one store with a
// controllable clock.
type redemptionFixture struct {
	issuer   *IssuerService
	redeemer *RedemptionService
	booking  domain.Booking
	now      time.Time
	mu       sync.Mutex
}

func newRedemptionFixture(t *testing.T) *redemptionFixture {
	t.Helper()

	st := newTestStore(t)
	codec := newTestCodec(t)

	f := &redemptionFixture{
		booking: domain.Booking{
			ID:          "bk_500",
			OwnerUserID: "user_owner",
			AssetID:     "asset_trailer",
			Dates:       []time.Time{time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)},
		},
		now: time.Date(2026, 5, 18, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.now
	}

	f.issuer = &IssuerService{Store: st, Codec: codec, Now: clock}
	f.redeemer = &RedemptionService{Store: st, Codec: codec, Now: clock}

	seedBooking(t, st, f.booking)
	return f
}

func (f *redemptionFixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *redemptionFixture) issue(t *testing.T, expiresIn time.Duration) IssuedTokens {
	t.Helper()

	issued, err := f.issuer.Issue(context.Background(), "admin", IssueParams{
		BookingID: f.booking.ID,
		UserID:    f.booking.OwnerUserID,
		AssetID:   f.booking.AssetID,
		ExpiresIn: expiresIn,
	})
	require.NoError(t, err)
	return issued
}

func TestRedemptionService_Verify(t *testing.T) {
	t.Parallel()

	f := newRedemptionFixture(t)
	issued := f.issue(t, 10*time.Minute)

	t.Run("reports claims and remaining lifetime", func(t *testing.T) {
		v, err := f.redeemer.Verify(context.Background(), "scanner", issued.Handover.Token)
		require.NoError(t, err)
		require.Equal(t, f.booking.ID, v.Claims.BookingID)
		require.Equal(t, qrtoken.ActionHandover, v.Claims.Action)
		require.Equal(t, 10*time.Minute, v.Remaining)
	})

	t.Run("is read-only", func(t *testing.T) {
		for range 3 {
			_, err := f.redeemer.Verify(context.Background(), "scanner", issued.Handover.Token)
			require.NoError(t, err)
		}
		// Still redeemable afterwards.
		_, err := f.redeemer.Redeem(context.Background(), "scanner", issued.Handover.Token)
		require.NoError(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := f.redeemer.Verify(context.Background(), "scanner", "not-a-token")
		require.ErrorIs(t, err, qrtoken.ErrMalformedToken)
	})

	t.Run("requires caller identity", func(t *testing.T) {
		_, err := f.redeemer.Verify(context.Background(), "", issued.Handover.Token)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestRedemptionService_Redeem(t *testing.T) {
	t.Parallel()

	t.Run("marks status and appends audit event", func(t *testing.T) {
		f := newRedemptionFixture(t)
		issued := f.issue(t, 15*time.Minute)

		red, err := f.redeemer.Redeem(context.Background(), "scanner_1", issued.Handover.Token)
		require.NoError(t, err)
		require.Equal(t, f.booking.ID, red.BookingID)
		require.Equal(t, qrtoken.ActionHandover, red.Action)

		booking, err := f.issuer.Store.Bookings().GetBooking(context.Background(), f.booking.OwnerUserID, f.booking.AssetID, f.booking.ID)
		require.NoError(t, err)
		require.True(t, booking.HandedOver.Done)
		require.Equal(t, "scanner_1", booking.HandedOver.VerifiedBy)
		require.False(t, booking.Returned.Done)

		events, err := f.issuer.Store.Events().ListEvents(context.Background(), f.booking.OwnerUserID, f.booking.ID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, qrtoken.ActionHandover, events[0].Action)
		require.Equal(t, "scanner_1", events[0].ActorID)
		require.Equal(t, issued.Handover.RedemptionID, events[0].RedemptionID)
	})

	t.Run("replay is rejected", func(t *testing.T) {
		f := newRedemptionFixture(t)
		issued := f.issue(t, 15*time.Minute)

		_, err := f.redeemer.Redeem(context.Background(), "scanner", issued.Handover.Token)
		require.NoError(t, err)

		_, err = f.redeemer.Redeem(context.Background(), "scanner", issued.Handover.Token)
		require.ErrorIs(t, err, ErrAlreadyRedeemed)

		// The sibling action is untouched by the replay.
		_, err = f.redeemer.Redeem(context.Background(), "scanner", issued.Return.Token)
		require.NoError(t, err)
	})

	t.Run("superseded after reissue", func(t *testing.T) {
		f := newRedemptionFixture(t)
		old := f.issue(t, 15*time.Minute)

		fresh, err := f.issuer.Reissue(context.Background(), "admin", IssueParams{
			BookingID: f.booking.ID,
			UserID:    f.booking.OwnerUserID,
			AssetID:   f.booking.AssetID,
			ExpiresIn: 15 * time.Minute,
		})
		require.NoError(t, err)

		_, err = f.redeemer.Redeem(context.Background(), "scanner", old.Handover.Token)
		require.ErrorIs(t, err, ErrTokenSuperseded)

		_, err = f.redeemer.Redeem(context.Background(), "scanner", fresh.Handover.Token)
		require.NoError(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newRedemptionFixture(t)
		issued := f.issue(t, time.Minute)

		f.advance(time.Minute + time.Millisecond)
		_, err := f.redeemer.Redeem(context.Background(), "scanner", issued.Handover.Token)
		require.ErrorIs(t, err, qrtoken.ErrExpired)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newRedemptionFixture(t)
		codec := f.redeemer.Codec

		token, err := codec.Encode(qrtoken.Claims{
			BookingID:    "bk_ghost",
			UserID:       "nobody",
			AssetID:      "nothing",
			Action:       qrtoken.ActionHandover,
			RedemptionID: "r1",
			ExpiresAtMS:  f.now.Add(time.Hour).UnixMilli(),
		})
		require.NoError(t, err)

		_, err = f.redeemer.Redeem(context.Background(), "scanner", token)
		require.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestRedemptionService_ConcurrentRedeems(t *testing.T) {
	t.Parallel()

	f := newRedemptionFixture(t)
	issued := f.issue(t, 15*time.Minute)

	const workers = 16
	results := make(chan error, workers)

	var start sync.WaitGroup
	start.Add(1)
	for range workers {
		go func() {
			start.Wait()
			_, err := f.redeemer.Redeem(context.Background(), "scanner", issued.Handover.Token)
			results <- err
		}()
	}
	start.Done()

	var succeeded, replayed int
	for range workers {
		err := <-results
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrAlreadyRedeemed)
			replayed++
		}
	}

	require.Equal(t, 1, succeeded)
	require.Equal(t, workers-1, replayed)

	events, err := f.issuer.Store.Events().ListEvents(context.Background(), f.booking.OwnerUserID, f.booking.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

// TestRedemptionService_Lifecycle walks a booking through its full handover
// and return flow on a short interactive TTL.
func TestRedemptionService_Lifecycle(t *testing.T) {
	t.Parallel()

	f := newRedemptionFixture(t)
	issued := f.issue(t, 900*time.Second)

	// Handover shortly after issuance.
	f.advance(100 * time.Millisecond)
	red, err := f.redeemer.Redeem(context.Background(), "asset_manager", issued.Handover.Token)
	require.NoError(t, err)
	require.Equal(t, qrtoken.ActionHandover, red.Action)

	// Replaying the handover token fails.
	_, err = f.redeemer.Redeem(context.Background(), "asset_manager", issued.Handover.Token)
	require.ErrorIs(t, err, ErrAlreadyRedeemed)

	// The return token sat past its expiry.
	f.advance(900 * time.Second)
	_, err = f.redeemer.Redeem(context.Background(), "asset_manager", issued.Return.Token)
	require.ErrorIs(t, err, qrtoken.ErrExpired)

	booking, err := f.issuer.Store.Bookings().GetBooking(context.Background(), f.booking.OwnerUserID, f.booking.AssetID, f.booking.ID)
	require.NoError(t, err)
	require.True(t, booking.HandedOver.Done)
	require.False(t, booking.Returned.Done)
}
