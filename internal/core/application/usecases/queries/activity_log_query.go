package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ActivityLogLimit caps the activity feed to the newest entries.
const ActivityLogLimit = 100

// ActivityView is an audit entry joined with its user. User is nil when the
// account was deleted after the entry was written.
type ActivityView struct {
	ID        string
	Action    string
	Details   string
	IPAddress string
	Timestamp time.Time
	User      *ActivityUserView
}

type ActivityUserView struct {
	ID       string
	Username string
	FullName string
	Role     string
}

type ActivityLogQueryHandler struct {
	db *gorm.DB
}

func NewActivityLogQueryHandler(db *gorm.DB) ActivityLogQueryHandler {
	return ActivityLogQueryHandler{db: db}
}

// Handle returns the newest entries first.
func (h ActivityLogQueryHandler) Handle(ctx context.Context) ([]ActivityView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.action,
			COALESCE(a.details, ''),
			COALESCE(a.ip_address, ''),
			a.timestamp,
			a.user_id,
			u.username,
			u.full_name,
			u.role
		FROM activity_logs a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.timestamp DESC
		LIMIT ?
	`, ActivityLogLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]ActivityView, 0)
	for rows.Next() {
		var e ActivityView
		var userID string
		var username, fullName, role *string

		err = rows.Scan(&e.ID, &e.Action, &e.Details, &e.IPAddress, &e.Timestamp, &userID, &username, &fullName, &role)
		if err != nil {
			return nil, err
		}

		if username != nil {
			e.User = &ActivityUserView{
				ID:       userID,
				Username: *username,
				FullName: deref(fullName),
				Role:     deref(role),
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
