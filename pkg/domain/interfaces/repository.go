package interfaces

import (
	"context"
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/model/shift"
	"github.com/guardline/shiftwatch/pkg/domain/types"
)

// Repository is the persistence boundary for urgent shift alerts.
type Repository interface {
	// CreateAlert stores a new alert. It fails with an errs.TagDuplicateAlert
	// tagged error when an active alert already exists for the same shift;
	// the check and the write are atomic.
	CreateAlert(ctx context.Context, a *alert.Alert) error
	GetAlert(ctx context.Context, alertID types.AlertID) (*alert.Alert, error)
	PutAlert(ctx context.Context, a *alert.Alert) error

	GetAlertsByStatus(ctx context.Context, statuses []types.AlertStatus, offset, limit int) ([]*alert.Alert, error)
	GetActiveAlertsByShifts(ctx context.Context, shiftIDs []types.ShiftID) (map[types.ShiftID]*alert.Alert, error)
	// GetAlertsScheduledBefore returns unresolved alerts whose shift starts
	// before the cutoff.
	GetAlertsScheduledBefore(ctx context.Context, cutoff time.Time) ([]*alert.Alert, error)
}

// ShiftSource is the read-only query capability over the shift management
// subsystem's data.
type ShiftSource interface {
	ListUpcomingShifts(ctx context.Context, statuses []types.ShiftStatus, until time.Time) ([]*shift.Shift, error)
}

// AlertNotifier receives alert records on create and escalate so an external
// dispatcher can deliver them. Delivery itself is out of this engine's scope.
type AlertNotifier interface {
	NotifyAlertCreated(ctx context.Context, a *alert.Alert)
	NotifyAlertEscalated(ctx context.Context, a *alert.Alert)
}
