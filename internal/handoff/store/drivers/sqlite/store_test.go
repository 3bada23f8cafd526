package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentloop/handoff/internal/handoff/domain"
	"github.com/rentloop/handoff/internal/handoff/store"
	"github.com/rentloop/handoff/pkg/idx"
	"github.com/rentloop/handoff/pkg/qrtoken"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func seed(t *testing.T, st *Store) domain.Booking {
	t.Helper()

	b := domain.Booking{
		ID:          "bk_1",
		OwnerUserID: "owner_1",
		AssetID:     "asset_1",
		Dates: []time.Time{
			time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, st.Bookings().CreateBooking(context.Background(), b))
	return b
}

func TestBookingsRepo_Mirroring(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	b := seed(t, st)
	ctx := context.Background()

	t.Run("create writes a row per scope", func(t *testing.T) {
		var count int
		err := st.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM booking_docs WHERE booking_id = ?`, b.ID,
		).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("read round-trips dates and zero state", func(t *testing.T) {
		got, err := st.Bookings().GetBooking(ctx, b.OwnerUserID, b.AssetID, b.ID)
		require.NoError(t, err)
		require.Equal(t, b.Dates, got.Dates)
		require.Empty(t, got.Tokens.HandoverRedemptionID)
		require.False(t, got.HandedOver.Done)
		require.False(t, got.Returned.Done)
	})

	t.Run("duplicate create", func(t *testing.T) {
		err := st.Bookings().CreateBooking(ctx, b)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("wrong scope keys do not resolve", func(t *testing.T) {
		_, err := st.Bookings().GetBooking(ctx, "someone_else", b.AssetID, b.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Bookings().GetBooking(ctx, b.OwnerUserID, "other_asset", b.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("live tokens update both mirrors", func(t *testing.T) {
		now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
		require.NoError(t, st.Bookings().SetLiveTokens(ctx, b.OwnerUserID, b.AssetID, b.ID, "h1", "r1", now))

		for _, scope := range []struct{ name, id string }{
			{"owner", b.OwnerUserID},
			{"asset", b.AssetID},
		} {
			var handoverID string
			err := st.db.QueryRowContext(ctx, `
				SELECT handover_redemption_id FROM booking_docs
				WHERE scope = ? AND scope_id = ? AND booking_id = ?`,
				scope.name, scope.id, b.ID,
			).Scan(&handoverID)
			require.NoError(t, err)
			require.Equal(t, "h1", handoverID)
		}
	})

	t.Run("live tokens for unknown booking", func(t *testing.T) {
		err := st.Bookings().SetLiveTokens(ctx, b.OwnerUserID, b.AssetID, "bk_missing", "h", "r", time.Now())
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestBookingsRepo_MarkRedeemed(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	b := seed(t, st)
	ctx := context.Background()
	at := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, st.Bookings().MarkRedeemed(ctx, b.OwnerUserID, b.AssetID, b.ID, qrtoken.ActionHandover, "scanner", at))

	got, err := st.Bookings().GetBooking(ctx, b.OwnerUserID, b.AssetID, b.ID)
	require.NoError(t, err)
	require.True(t, got.HandedOver.Done)
	require.Equal(t, "scanner", got.HandedOver.VerifiedBy)
	require.NotNil(t, got.HandedOver.UpdatedAt)
	require.Equal(t, at, got.HandedOver.UpdatedAt.UTC())
	require.False(t, got.Returned.Done)

	// The status guard rejects a second mark for the same action.
	err = st.Bookings().MarkRedeemed(ctx, b.OwnerUserID, b.AssetID, b.ID, qrtoken.ActionHandover, "scanner", at)
	require.ErrorIs(t, err, store.ErrConflict)

	// The other action is independent.
	require.NoError(t, st.Bookings().MarkRedeemed(ctx, b.OwnerUserID, b.AssetID, b.ID, qrtoken.ActionReturn, "scanner", at))

	err = st.Bookings().MarkRedeemed(ctx, b.OwnerUserID, b.AssetID, "bk_missing", qrtoken.ActionHandover, "scanner", at)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEventsRepo_AppendAndList(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	b := seed(t, st)
	ctx := context.Background()

	first := domain.Event{
		ID:           idx.New().String(),
		BookingID:    b.ID,
		Action:       qrtoken.ActionHandover,
		ActorID:      "scanner_1",
		RedemptionID: "h1",
		VerifiedAt:   time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
	}
	second := domain.Event{
		ID:           idx.New().String(),
		BookingID:    b.ID,
		Action:       qrtoken.ActionReturn,
		ActorID:      "scanner_2",
		RedemptionID: "r1",
		VerifiedAt:   time.Date(2026, 7, 2, 17, 0, 0, 0, time.UTC),
	}

	require.NoError(t, st.Events().AppendEvent(ctx, b.OwnerUserID, b.AssetID, first))
	require.NoError(t, st.Events().AppendEvent(ctx, b.OwnerUserID, b.AssetID, second))

	events, err := st.Events().ListEvents(ctx, b.OwnerUserID, b.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, first.ID, events[0].ID)
	require.Equal(t, qrtoken.ActionHandover, events[0].Action)
	require.Equal(t, second.ID, events[1].ID)
	require.Equal(t, "scanner_2", events[1].ActorID)
	require.Equal(t, second.VerifiedAt, events[1].VerifiedAt.UTC())
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	ctx := context.Background()

	b := domain.Booking{ID: "bk_tx", OwnerUserID: "o", AssetID: "a"}
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Bookings().CreateBooking(ctx, b); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = st.Bookings().GetBooking(ctx, "o", "a", "bk_tx")
	require.ErrorIs(t, err, store.ErrNotFound)
}
