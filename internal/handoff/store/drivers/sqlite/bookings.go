package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rentloop/handoff/internal/handoff/domain"
	"github.com/rentloop/handoff/internal/handoff/store"
	"github.com/rentloop/handoff/pkg/qrtoken"
)

type bookingsRepo struct {
	db dbtx
}

const bookingColumns = `owner_user_id, asset_id, booking_id, dates,
	handover_redemption_id, return_redemption_id, tokens_created_at,
	handover_status, handover_updated_at, handover_verified_by,
	return_status, return_updated_at, return_verified_by,
	created_at, updated_at`

// mirrorWhere addresses both rows of one booking aggregate. Every mutation
// in this repo uses it so a write can never touch one mirror without the
// other.
const mirrorWhere = `booking_id = ?3
	AND ((scope = 'owner' AND scope_id = ?1) OR (scope = 'asset' AND scope_id = ?2))`

func (r *bookingsRepo) CreateBooking(ctx context.Context, b domain.Booking) error {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	for _, mirror := range []struct{ scope, scopeID string }{
		{"owner", b.OwnerUserID},
		{"asset", b.AssetID},
	} {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO booking_docs (
				scope, scope_id, booking_id, owner_user_id, asset_id, dates,
				handover_redemption_id, return_redemption_id, tokens_created_at,
				handover_status, handover_updated_at, handover_verified_by,
				return_status, return_updated_at, return_verified_by,
				created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			mirror.scope, mirror.scopeID, b.ID, b.OwnerUserID, b.AssetID, joinDates(b.Dates),
			mapStringNull(b.Tokens.HandoverRedemptionID),
			mapStringNull(b.Tokens.ReturnRedemptionID),
			fmtTimePtr(b.Tokens.CreatedAt),
			b.HandedOver.Done, fmtTimePtr(b.HandedOver.UpdatedAt), b.HandedOver.VerifiedBy,
			b.Returned.Done, fmtTimePtr(b.Returned.UpdatedAt), b.Returned.VerifiedBy,
			fmtTime(b.CreatedAt), fmtTime(b.UpdatedAt),
		)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint") {
				return store.ErrAlreadyExists
			}
			return err
		}
	}

	return nil
}

func (r *bookingsRepo) GetBooking(ctx context.Context, ownerUserID, assetID, bookingID string) (domain.Booking, error) {
	// Both mirrors must exist for the aggregate to be addressable; a lone
	// row means a partial write happened outside this service.
	var mirrors int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM booking_docs WHERE `+mirrorWhere,
		ownerUserID, assetID, bookingID,
	).Scan(&mirrors)
	if err != nil {
		return domain.Booking{}, err
	}
	if mirrors < 2 {
		return domain.Booking{}, store.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+bookingColumns+`
		FROM booking_docs
		WHERE scope = 'owner' AND scope_id = ? AND booking_id = ?`,
		ownerUserID, bookingID,
	)
	return scanBooking(row)
}

func (r *bookingsRepo) SetLiveTokens(ctx context.Context, ownerUserID, assetID, bookingID, handoverID, returnID string, createdAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE booking_docs
		SET handover_redemption_id = ?4,
		    return_redemption_id = ?5,
		    tokens_created_at = ?6,
		    updated_at = ?6
		WHERE `+mirrorWhere,
		ownerUserID, assetID, bookingID, handoverID, returnID, fmtTime(createdAt),
	)
	if err != nil {
		return err
	}
	return requireBothMirrors(res, bookingID)
}

func (r *bookingsRepo) MarkRedeemed(ctx context.Context, ownerUserID, assetID, bookingID string, action qrtoken.Action, verifiedBy string, at time.Time) error {
	statusCol := "handover_status"
	updatedCol := "handover_updated_at"
	verifiedCol := "handover_verified_by"
	if action == qrtoken.ActionReturn {
		statusCol = "return_status"
		updatedCol = "return_updated_at"
		verifiedCol = "return_verified_by"
	}

	// Guarded on the current status so a racing redemption can only ever
	// commit once; the loser sees zero rows touched.
	res, err := r.db.ExecContext(ctx, `
		UPDATE booking_docs
		SET `+statusCol+` = 1,
		    `+updatedCol+` = ?4,
		    `+verifiedCol+` = ?5,
		    updated_at = ?4
		WHERE `+mirrorWhere+` AND `+statusCol+` = 0`,
		ownerUserID, assetID, bookingID, fmtTime(at), verifiedBy,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	switch affected {
	case 2:
		return nil
	case 0:
		var mirrors int
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM booking_docs WHERE `+mirrorWhere,
			ownerUserID, assetID, bookingID,
		).Scan(&mirrors)
		if err != nil {
			return err
		}
		if mirrors < 2 {
			return store.ErrNotFound
		}
		return store.ErrConflict
	default:
		return fmt.Errorf("sqlite: booking %s mirrors diverged (%d rows updated)", bookingID, affected)
	}
}

func requireBothMirrors(res sql.Result, bookingID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	switch affected {
	case 2:
		return nil
	case 0:
		return store.ErrNotFound
	default:
		return fmt.Errorf("sqlite: booking %s mirrors diverged (%d rows updated)", bookingID, affected)
	}
}

func scanBooking(row *sql.Row) (domain.Booking, error) {
	var (
		b                    domain.Booking
		dates                string
		handoverID, returnID sql.NullString
		tokensCreated        sql.NullString
		handoverAt, returnAt sql.NullString
		createdAt, updatedAt string
	)

	err := row.Scan(
		&b.OwnerUserID, &b.AssetID, &b.ID, &dates,
		&handoverID, &returnID, &tokensCreated,
		&b.HandedOver.Done, &handoverAt, &b.HandedOver.VerifiedBy,
		&b.Returned.Done, &returnAt, &b.Returned.VerifiedBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Booking{}, mapNotFound(err)
	}

	b.Dates, err = splitDates(dates)
	if err != nil {
		return domain.Booking{}, err
	}
	b.Tokens.HandoverRedemptionID = mapNullString(handoverID)
	b.Tokens.ReturnRedemptionID = mapNullString(returnID)
	if b.Tokens.CreatedAt, err = parseTimePtr(tokensCreated); err != nil {
		return domain.Booking{}, err
	}
	if b.HandedOver.UpdatedAt, err = parseTimePtr(handoverAt); err != nil {
		return domain.Booking{}, err
	}
	if b.Returned.UpdatedAt, err = parseTimePtr(returnAt); err != nil {
		return domain.Booking{}, err
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Booking{}, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Booking{}, err
	}

	return b, nil
}

// Booked dates are stored as a space-delimited RFC3339 list; RFC3339 never
// contains spaces so the encoding is unambiguous.

func joinDates(dates []time.Time) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.UTC().Format(time.RFC3339)
	}
	return strings.Join(parts, " ")
}

func splitDates(s string) ([]time.Time, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	dates := make([]time.Time, 0, len(fields))
	for _, f := range fields {
		d, err := time.Parse(time.RFC3339, f)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse booked date %q: %w", f, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}
