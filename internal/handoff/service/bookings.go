package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/rentloop/handoff/internal/handoff/domain"
	"github.com/rentloop/handoff/internal/handoff/store"
	"github.com/rentloop/handoff/pkg/slogx"
)

var ErrBookingExists = errors.New("booking already exists")

// BookingService covers the booking plumbing around the token lifecycle:
// registering the mirrored aggregate and reading its audit trail. Booking
// content otherwise belongs to the wider platform.
type BookingService struct {
	Store store.Store
}

type CreateBookingParams struct {
	BookingID   string
	OwnerUserID string
	AssetID     string
	Dates       []time.Time
}

// CreateBooking writes both mirror rows for a new booking.
func (s *BookingService) CreateBooking(ctx context.Context, callerID string, p CreateBookingParams) (domain.Booking, error) {
	log := slogx.FromContext(ctx)

	if callerID == "" {
		return domain.Booking{}, ErrUnauthenticated
	}
	if p.BookingID == "" || p.OwnerUserID == "" || p.AssetID == "" {
		return domain.Booking{}, ErrInvalidRequest
	}

	dates := make([]time.Time, len(p.Dates))
	copy(dates, p.Dates)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	booking := domain.Booking{
		ID:          p.BookingID,
		OwnerUserID: p.OwnerUserID,
		AssetID:     p.AssetID,
		Dates:       dates,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Bookings().CreateBooking(ctx, booking); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrBookingExists
			}
			log.Error("failed to create booking",
				slog.String("booking_id", p.BookingID),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	log.Info("booking registered",
		slog.String("booking_id", p.BookingID),
		slog.String("owner_user_id", p.OwnerUserID),
		slog.String("asset_id", p.AssetID),
		slog.Int("dates", len(dates)),
	)

	return booking, nil
}

// Events returns the booking's redemption audit trail in append order.
func (s *BookingService) Events(ctx context.Context, callerID, ownerUserID, bookingID string) ([]domain.Event, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if ownerUserID == "" || bookingID == "" {
		return nil, ErrInvalidRequest
	}
	return s.Store.Events().ListEvents(ctx, ownerUserID, bookingID)
}
