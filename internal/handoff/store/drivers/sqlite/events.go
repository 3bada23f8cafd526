package sqlite

import (
	"context"

	"github.com/rentloop/handoff/internal/handoff/domain"
	"github.com/rentloop/handoff/pkg/qrtoken"
)

type eventsRepo struct {
	db dbtx
}

func (r *eventsRepo) AppendEvent(ctx context.Context, ownerUserID, assetID string, ev domain.Event) error {
	for _, mirror := range []struct{ scope, scopeID string }{
		{"owner", ownerUserID},
		{"asset", assetID},
	} {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO booking_events (
				id, scope, scope_id, booking_id, action, actor_id, redemption_id, verified_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ev.ID, mirror.scope, mirror.scopeID, ev.BookingID,
			string(ev.Action), ev.ActorID, ev.RedemptionID, fmtTime(ev.VerifiedAt),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *eventsRepo) ListEvents(ctx context.Context, ownerUserID, bookingID string) ([]domain.Event, error) {
	// ULID ids sort by creation time, so ordering by id is append order.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, booking_id, action, actor_id, redemption_id, verified_at
		FROM booking_events
		WHERE scope = 'owner' AND scope_id = ? AND booking_id = ?
		ORDER BY id`,
		ownerUserID, bookingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			ev         domain.Event
			action     string
			verifiedAt string
		)
		if err := rows.Scan(&ev.ID, &ev.BookingID, &action, &ev.ActorID, &ev.RedemptionID, &verifiedAt); err != nil {
			return nil, err
		}
		ev.Action = qrtoken.Action(action)
		if ev.VerifiedAt, err = parseTime(verifiedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
