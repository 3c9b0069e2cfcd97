package usecase

import (
	"context"
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/utils/errutil"
	"github.com/guardline/shiftwatch/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type CreateAlertInput struct {
	ShiftID         types.ShiftID       `json:"shift_id"`
	AlertType       types.AlertType     `json:"alert_type"`
	Priority        types.AlertPriority `json:"priority"`
	HoursUntilShift float64             `json:"hours_until_shift"`
	ShiftStartAt    time.Time           `json:"shift_start_at"`
}

func (x *CreateAlertInput) Validate() error {
	if x.ShiftID == types.EmptyShiftID {
		return goerr.New("shift ID is required", goerr.T(errs.TagValidation))
	}
	if err := x.AlertType.Validate(); err != nil {
		return goerr.Wrap(err, "invalid alert type", goerr.T(errs.TagValidation))
	}
	if err := x.Priority.Validate(); err != nil {
		return goerr.Wrap(err, "invalid priority", goerr.T(errs.TagValidation))
	}
	return nil
}

// CreateAlert creates a new active alert for a shift. The repository rejects
// it with an errs.TagDuplicateAlert error when an active alert already
// exists for the shift.
func (uc *UseCases) CreateAlert(ctx context.Context, input CreateAlertInput) (*alert.Alert, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	newAlert := alert.New(ctx, input.ShiftID, input.AlertType, input.Priority,
		input.HoursUntilShift, input.ShiftStartAt)

	if err := uc.repository.CreateAlert(ctx, &newAlert); err != nil {
		return nil, goerr.Wrap(err, "failed to create alert",
			goerr.TV(errutil.ShiftIDKey, input.ShiftID))
	}

	logging.From(ctx).Info("alert created",
		"alert_id", newAlert.ID,
		"shift_id", newAlert.ShiftID,
		"alert_type", newAlert.AlertType,
		"priority", newAlert.Priority)

	uc.notifyCreated(ctx, &newAlert)

	return &newAlert, nil
}

func (uc *UseCases) GetAlert(ctx context.Context, alertID types.AlertID) (*alert.Alert, error) {
	return uc.repository.GetAlert(ctx, alertID)
}

func (uc *UseCases) ListAlerts(ctx context.Context, statuses []types.AlertStatus, offset, limit int) ([]*alert.Alert, error) {
	return uc.repository.GetAlertsByStatus(ctx, statuses, offset, limit)
}

// AcknowledgeAlert marks an active alert as acknowledged by an operator.
func (uc *UseCases) AcknowledgeAlert(ctx context.Context, alertID types.AlertID, actor types.UserID) (*alert.Alert, error) {
	a, err := uc.repository.GetAlert(ctx, alertID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get alert for acknowledgement")
	}

	if err := a.Acknowledge(ctx, actor); err != nil {
		return nil, err
	}

	if err := uc.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to save acknowledged alert")
	}

	logging.From(ctx).Info("alert acknowledged",
		"alert_id", a.ID, "acknowledged_by", actor)

	return a, nil
}

// ResolveAlert moves an alert to the terminal resolved status.
func (uc *UseCases) ResolveAlert(ctx context.Context, alertID types.AlertID, actor types.UserID, reason string) (*alert.Alert, error) {
	a, err := uc.repository.GetAlert(ctx, alertID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get alert for resolution")
	}

	if err := a.Resolve(ctx, actor, reason); err != nil {
		return nil, err
	}

	if err := uc.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to save resolved alert")
	}

	logging.From(ctx).Info("alert resolved",
		"alert_id", a.ID, "resolved_by", actor, "reason", reason)

	return a, nil
}

type EscalationRequest struct {
	AlertID types.AlertID `json:"alert_id"`
	// Priority is the new priority to apply. It is an explicit input rather
	// than a function of the escalation level; a value below the current
	// priority is ignored, an empty value keeps the current one.
	Priority types.AlertPriority `json:"priority,omitempty"`
}

// EscalateAlert raises the escalation level of an unresolved alert,
// optionally raising its priority. At the ceiling it fails with an
// errs.TagMaxEscalation error.
func (uc *UseCases) EscalateAlert(ctx context.Context, req EscalationRequest) (*alert.Alert, error) {
	a, err := uc.repository.GetAlert(ctx, req.AlertID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get alert for escalation")
	}

	if err := a.Escalate(ctx, req.Priority); err != nil {
		return nil, err
	}

	if err := uc.repository.PutAlert(ctx, a); err != nil {
		return nil, goerr.Wrap(err, "failed to save escalated alert")
	}

	logging.From(ctx).Info("alert escalated",
		"alert_id", a.ID,
		"escalation_level", a.EscalationLevel,
		"priority", a.Priority)

	uc.notifyEscalated(ctx, a)

	return a, nil
}

func (uc *UseCases) notifyCreated(ctx context.Context, a *alert.Alert) {
	if uc.notifier != nil {
		uc.notifier.NotifyAlertCreated(ctx, a)
	}
}

func (uc *UseCases) notifyEscalated(ctx context.Context, a *alert.Alert) {
	if uc.notifier != nil {
		uc.notifier.NotifyAlertEscalated(ctx, a)
	}
}
