// Package audit appends activity log entries for completed operations.
package audit

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/application/access"
	"logistics/internal/core/domain/model/activity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// Recorder writes activity entries on a best-effort basis. A failed write is
// reported to the operational log and never to the caller, so Record has no
// error result.
type Recorder struct {
	log    ports.ActivityLog
	logger *slog.Logger
	now    func() time.Time
}

func NewRecorder(log ports.ActivityLog, logger *slog.Logger) *Recorder {
	return &Recorder{
		log:    log,
		logger: logger.With("component", "audit"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record appends an entry for actor. It is called after the business
// transaction committed and uses a context that survives request cancellation.
func (r *Recorder) Record(ctx context.Context, actor access.Actor, action activity.Action, details string) {
	entry, err := activity.NewEntry(kernel.NewUUID(), actor.UserID, action, details, actor.IPAddress, r.now())
	if err != nil {
		r.logger.WarnContext(ctx, "Invalid activity entry", "action", action, "error", err)
		return
	}

	if err := r.log.Append(context.WithoutCancel(ctx), entry); err != nil {
		r.logger.ErrorContext(ctx, "Failed to append activity entry",
			"action", action,
			"user_id", actor.UserID.String(),
			"error", err,
		)
	}
}
