package database

import (
	"context"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// Archive mirrors engine events into Postgres: every order, every status
// change and every settled payment. The engine's in-memory state stays the
// source of truth; the archive exists for reporting and for surviving a
// process restart with history intact. Like the notification relay it
// consumes the event stream outside transitions, so a slow database can
// never stall the floor.
type Archive struct {
	db     *DB
	events <-chan models.Event
	logger *logger.Logger
}

// NewArchive creates an archive over an engine event subscription.
func NewArchive(db *DB, events <-chan models.Event, log *logger.Logger) *Archive {
	return &Archive{
		db:     db,
		events: events,
		logger: log,
	}
}

// Run consumes events until the context is cancelled.
func (a *Archive) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("archive_stopped", "Event archive stopped", "", nil)
			return
		case ev, ok := <-a.events:
			if !ok {
				return
			}
			if err := a.record(ctx, ev); err != nil {
				a.logger.Error("archive_write_failed", "Failed to archive event", "", err, map[string]interface{}{
					"event_type": string(ev.Type),
				})
			}
		}
	}
}

func (a *Archive) record(ctx context.Context, ev models.Event) error {
	switch ev.Type {
	case models.EventOrderPlaced:
		return a.db.Exec(ctx, InsertArchivedOrderSQL,
			ev.OrderNumber, ev.Dish, ev.TableNumber, ev.Seat, ev.Server, ev.Price, ev.NewStatus)

	case models.EventOrderStatusChanged:
		if err := a.db.Exec(ctx, UpdateArchivedOrderStatusSQL,
			ev.NewStatus, ev.ChangedBy, ev.Reason, ev.OrderNumber); err != nil {
			return err
		}
		return a.db.Exec(ctx, InsertOrderStatusLogSQL,
			ev.OrderNumber, ev.OldStatus, ev.NewStatus, ev.ChangedBy, ev.Reason)

	case models.EventPaymentRecorded:
		return a.db.Exec(ctx, InsertPaymentSQL,
			ev.Timestamp.Format(models.PaymentDateLayout), ev.Server, ev.TableNumber, ev.Payment)
	}

	// threshold and table events carry no archive state
	return nil
}
