package alert

import (
	"context"
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/utils/clock"
	"github.com/guardline/shiftwatch/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// MaxEscalationLevel is the ceiling of EscalationLevel. Escalating an alert
// already at the ceiling fails and leaves the level unchanged.
const MaxEscalationLevel = 5

// Alert is an urgent shift alert. At most one active alert exists per shift;
// the repository enforces that atomically on creation. Alerts are never
// deleted, resolution is a terminal status.
type Alert struct {
	ID              types.AlertID       `json:"id"`
	ShiftID         types.ShiftID       `json:"shift_id"`
	AlertType       types.AlertType     `json:"alert_type"`
	Priority        types.AlertPriority `json:"priority"`
	HoursUntilShift float64             `json:"hours_until_shift"`
	ShiftStartAt    time.Time           `json:"shift_start_at"`
	Status          types.AlertStatus   `json:"status"`
	EscalationLevel int                 `json:"escalation_level"`

	AcknowledgedBy types.UserID `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time   `json:"acknowledged_at,omitempty"`

	ResolvedBy       types.UserID `json:"resolved_by,omitempty"`
	ResolvedAt       *time.Time   `json:"resolved_at,omitempty"`
	ResolutionReason string       `json:"resolution_reason,omitempty"`

	LastEscalatedAt *time.Time `json:"last_escalated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(ctx context.Context, shiftID types.ShiftID, alertType types.AlertType, priority types.AlertPriority, hoursUntilShift float64, shiftStartAt time.Time) Alert {
	now := clock.Now(ctx)
	return Alert{
		ID:              types.NewAlertID(),
		ShiftID:         shiftID,
		AlertType:       alertType,
		Priority:        priority,
		HoursUntilShift: hoursUntilShift,
		ShiftStartAt:    shiftStartAt,
		Status:          types.AlertStatusActive,
		EscalationLevel: 1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (x *Alert) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid alert ID")
	}
	if x.ShiftID == types.EmptyShiftID {
		return goerr.New("empty shift ID", goerr.TV(errutil.AlertIDKey, x.ID))
	}
	if err := x.AlertType.Validate(); err != nil {
		return goerr.Wrap(err, "invalid alert type")
	}
	if err := x.Priority.Validate(); err != nil {
		return goerr.Wrap(err, "invalid priority")
	}
	if err := x.Status.Validate(); err != nil {
		return goerr.Wrap(err, "invalid status")
	}
	if x.EscalationLevel < 1 || x.EscalationLevel > MaxEscalationLevel {
		return goerr.New("escalation level out of range",
			goerr.TV(errutil.EscalationLevelKey, x.EscalationLevel))
	}
	return nil
}

// Acknowledge moves the alert from active to acknowledged.
func (x *Alert) Acknowledge(ctx context.Context, actor types.UserID) error {
	if actor == types.EmptyUserID {
		return goerr.New("acknowledging user is required",
			goerr.T(errs.TagValidation),
			goerr.TV(errutil.AlertIDKey, x.ID))
	}

	switch x.Status {
	case types.AlertStatusResolved:
		return goerr.New("cannot acknowledge a resolved alert",
			goerr.T(errs.TagInvalidTransition),
			goerr.TV(errutil.AlertIDKey, x.ID))
	case types.AlertStatusAcknowledged:
		return goerr.New("alert is already acknowledged",
			goerr.T(errs.TagInvalidTransition),
			goerr.TV(errutil.AlertIDKey, x.ID),
			goerr.TV(errutil.UserIDKey, x.AcknowledgedBy))
	}

	now := clock.Now(ctx)
	x.Status = types.AlertStatusAcknowledged
	x.AcknowledgedBy = actor
	x.AcknowledgedAt = &now
	x.UpdatedAt = now
	return nil
}

// Resolve moves the alert to the terminal resolved status. Both active and
// acknowledged alerts can be resolved directly.
func (x *Alert) Resolve(ctx context.Context, actor types.UserID, reason string) error {
	if actor == types.EmptyUserID {
		return goerr.New("resolving user is required",
			goerr.T(errs.TagValidation),
			goerr.TV(errutil.AlertIDKey, x.ID))
	}

	if x.Status == types.AlertStatusResolved {
		return goerr.New("alert is already resolved",
			goerr.T(errs.TagInvalidTransition),
			goerr.TV(errutil.AlertIDKey, x.ID))
	}

	now := clock.Now(ctx)
	x.Status = types.AlertStatusResolved
	x.ResolvedBy = actor
	x.ResolvedAt = &now
	x.ResolutionReason = reason
	x.UpdatedAt = now
	return nil
}

// Escalate raises the escalation level by one, keeping the status. The
// requested priority is applied only when it is higher than the current one;
// an empty priority keeps the current one.
func (x *Alert) Escalate(ctx context.Context, priority types.AlertPriority) error {
	if x.Status == types.AlertStatusResolved {
		return goerr.New("cannot escalate a resolved alert",
			goerr.T(errs.TagInvalidTransition),
			goerr.TV(errutil.AlertIDKey, x.ID))
	}
	if x.EscalationLevel >= MaxEscalationLevel {
		return goerr.New("alert is already at maximum escalation level",
			goerr.T(errs.TagMaxEscalation),
			goerr.TV(errutil.AlertIDKey, x.ID),
			goerr.TV(errutil.EscalationLevelKey, x.EscalationLevel))
	}
	if priority != types.EmptyAlertPriority {
		if err := priority.Validate(); err != nil {
			return goerr.Wrap(err, "invalid escalation priority",
				goerr.T(errs.TagValidation),
				goerr.TV(errutil.AlertIDKey, x.ID))
		}
	}

	now := clock.Now(ctx)
	x.EscalationLevel++
	x.LastEscalatedAt = &now
	x.UpdatedAt = now
	if priority.Rank() > x.Priority.Rank() {
		x.Priority = priority
	}
	return nil
}

// LastActionAt returns the time of the most recent lifecycle action, used by
// the stale-alert escalation sweep.
func (x *Alert) LastActionAt() time.Time {
	last := x.CreatedAt
	if x.AcknowledgedAt != nil && x.AcknowledgedAt.After(last) {
		last = *x.AcknowledgedAt
	}
	if x.LastEscalatedAt != nil && x.LastEscalatedAt.After(last) {
		last = *x.LastEscalatedAt
	}
	return last
}
