package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rentloop/handoff/internal/handoff/domain"
	"github.com/rentloop/handoff/internal/handoff/store"
	"github.com/rentloop/handoff/pkg/qrtoken"
	"github.com/rentloop/handoff/pkg/slogx"
)

var (
	ErrUnauthenticated = errors.New("caller identity required")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoBookingDates  = errors.New("booking has no dates")
)

// ExpiryMode selects how token expiries are derived when a request does not
// ask for an explicit TTL. A deployment picks one mode and sticks with it.
type ExpiryMode string

const (
	// ExpiryModeDates derives expiries from the booked date range:
	// handover expires a grace period after the first booked date, return a
	// grace period after the last.
	ExpiryModeDates ExpiryMode = "dates"

	// ExpiryModeTTL gives both tokens a fixed lifetime from issuance, for
	// short-lived interactive redemption flows.
	ExpiryModeTTL ExpiryMode = "ttl"
)

const (
	DefaultExpiryGrace = 72 * time.Hour
	DefaultTokenTTL    = 15 * time.Minute
)

// IssuerService mints the matched handover/return token pair for a booking
// and records the live redemption ids on both booking mirrors.
type IssuerService struct {
	Store store.Store
	Codec *qrtoken.Codec

	Mode        ExpiryMode    // defaults to ExpiryModeDates
	ExpiryGrace time.Duration // date-derived mode; defaults to 72h
	TokenTTL    time.Duration // fixed-TTL mode; defaults to 15m

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// IssueParams identify the booking to issue for. ExpiresIn, when positive,
// forces fixed-TTL expiry for this issuance regardless of the configured
// mode.
type IssueParams struct {
	BookingID string
	UserID    string
	AssetID   string
	ExpiresIn time.Duration
}

// TokenGrant is one issued token with its bookkeeping identifiers. The token
// string is not re-derivable from storage: the caller receiving this grant
// is its only holder.
type TokenGrant struct {
	Token        string
	RedemptionID string
	ExpiresAt    time.Time
}

// IssuedTokens is the matched pair produced by one issuance.
type IssuedTokens struct {
	Handover TokenGrant
	Return   TokenGrant
}

// Issue mints a fresh token pair for the booking and persists the live
// redemption ids to both mirrors in one transaction.
func (s *IssuerService) Issue(ctx context.Context, callerID string, p IssueParams) (IssuedTokens, error) {
	return s.mint(ctx, callerID, p, false)
}

// Reissue replaces the live token pair. Previously issued tokens stop
// matching the stored redemption ids and will fail redemption as superseded,
// even if unexpired.
func (s *IssuerService) Reissue(ctx context.Context, callerID string, p IssueParams) (IssuedTokens, error) {
	return s.mint(ctx, callerID, p, true)
}

func (s *IssuerService) mint(ctx context.Context, callerID string, p IssueParams, reissue bool) (IssuedTokens, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate caller and request.
	if callerID == "" {
		log.Warn("token issuance attempted without caller identity")
		return IssuedTokens{}, ErrUnauthenticated
	}
	if p.BookingID == "" || p.UserID == "" || p.AssetID == "" {
		log.Warn("token issuance missing required ids",
			slog.String("booking_id", p.BookingID),
		)
		return IssuedTokens{}, ErrInvalidRequest
	}
	if p.ExpiresIn < 0 {
		return IssuedTokens{}, ErrInvalidRequest
	}

	now := s.now()

	// 2. Fresh redemption ids, one per action. Random v4 UUIDs so a holder
	// of one token cannot guess its sibling.
	handoverID := uuid.NewString()
	returnID := uuid.NewString()

	var issued IssuedTokens
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 3. The booking must exist under both mirrors.
		booking, err := tx.Bookings().GetBooking(ctx, p.UserID, p.AssetID, p.BookingID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("token issuance for unknown booking",
					slog.String("booking_id", p.BookingID),
				)
				return ErrBookingNotFound
			}
			log.Error("failed to fetch booking", slog.Any("error", err))
			return err
		}

		// 4. Derive per-action expiries.
		handoverExpiry, returnExpiry, err := s.expiries(booking, p.ExpiresIn, now)
		if err != nil {
			log.Warn("cannot derive token expiries",
				slog.String("booking_id", p.BookingID),
				slog.Any("error", err),
			)
			return err
		}

		// 5. Sign both tokens.
		issued.Handover, err = s.grant(booking, qrtoken.ActionHandover, handoverID, handoverExpiry)
		if err != nil {
			return err
		}
		issued.Return, err = s.grant(booking, qrtoken.ActionReturn, returnID, returnExpiry)
		if err != nil {
			return err
		}

		// 6. Replace the live ids on both mirrors. Only the ids are stored;
		// the signed strings exist solely in the response.
		if err := tx.Bookings().SetLiveTokens(ctx, p.UserID, p.AssetID, p.BookingID, handoverID, returnID, now); err != nil {
			log.Error("failed to persist live redemption ids",
				slog.String("booking_id", p.BookingID),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return IssuedTokens{}, err
	}

	log.Info("token pair issued",
		slog.String("booking_id", p.BookingID),
		slog.String("caller_id", callerID),
		slog.Bool("reissue", reissue),
		slog.Time("handover_expiry", issued.Handover.ExpiresAt),
		slog.Time("return_expiry", issued.Return.ExpiresAt),
	)

	return issued, nil
}

func (s *IssuerService) grant(b domain.Booking, action qrtoken.Action, redemptionID string, expiresAt time.Time) (TokenGrant, error) {
	token, err := s.Codec.Encode(qrtoken.Claims{
		BookingID:    b.ID,
		UserID:       b.OwnerUserID,
		AssetID:      b.AssetID,
		Action:       action,
		RedemptionID: redemptionID,
		ExpiresAtMS:  expiresAt.UnixMilli(),
	})
	if err != nil {
		return TokenGrant{}, err
	}
	return TokenGrant{
		Token:        token,
		RedemptionID: redemptionID,
		ExpiresAt:    expiresAt.UTC(),
	}, nil
}

// expiries computes the (handover, return) expiry pair. An explicit
// expiresIn wins; otherwise the configured mode decides.
func (s *IssuerService) expiries(b domain.Booking, expiresIn time.Duration, now time.Time) (time.Time, time.Time, error) {
	if expiresIn > 0 {
		exp := now.Add(expiresIn)
		return exp, exp, nil
	}

	if s.Mode == ExpiryModeTTL {
		ttl := s.TokenTTL
		if ttl <= 0 {
			ttl = DefaultTokenTTL
		}
		exp := now.Add(ttl)
		return exp, exp, nil
	}

	if len(b.Dates) == 0 {
		return time.Time{}, time.Time{}, ErrNoBookingDates
	}
	grace := s.ExpiryGrace
	if grace <= 0 {
		grace = DefaultExpiryGrace
	}
	return b.FirstDate().Add(grace), b.LastDate().Add(grace), nil
}

func (s *IssuerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
