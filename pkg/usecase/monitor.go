package usecase

import (
	"context"

	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/utils/clock"
	"github.com/guardline/shiftwatch/pkg/utils/errutil"
	"github.com/guardline/shiftwatch/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// MonitorResult is the summary of one monitor run.
type MonitorResult struct {
	Monitored     int `json:"monitored"`
	AlertsCreated int `json:"alerts_created"`
	Skipped       int `json:"skipped"`
}

var candidateShiftStatuses = []types.ShiftStatus{
	types.ShiftStatusUnassigned,
	types.ShiftStatusAssigned,
}

// MonitorShifts scans upcoming shifts and creates alerts for the ones that
// qualify. Runs are idempotent and safe to overlap: the repository's
// create-if-absent guarantee makes a concurrent duplicate a benign skip.
// A single shift's failure does not abort the scan.
func (uc *UseCases) MonitorShifts(ctx context.Context) (*MonitorResult, error) {
	logger := logging.From(ctx)

	cutoff := clock.Now(ctx).Add(uc.calculator.MaxWindow())
	shifts, err := uc.shiftSource.ListUpcomingShifts(ctx, candidateShiftStatuses, cutoff)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list candidate shifts",
			goerr.T(errs.TagDatabase))
	}

	shiftIDs := make([]types.ShiftID, len(shifts))
	for i, s := range shifts {
		shiftIDs[i] = s.ID
	}
	activeAlerts, err := uc.repository.GetActiveAlertsByShifts(ctx, shiftIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get active alerts for candidate shifts",
			goerr.T(errs.TagDatabase))
	}

	result := &MonitorResult{}
	for _, s := range shifts {
		result.Monitored++

		if _, ok := activeAlerts[s.ID]; ok {
			result.Skipped++
			continue
		}

		urgencyResult := uc.calculator.Calculate(ctx, s)
		if !urgencyResult.ShouldAlert {
			result.Skipped++
			continue
		}

		newAlert := alert.New(ctx, s.ID, urgencyResult.AlertType,
			urgencyResult.Priority(), urgencyResult.HoursUntilShift, s.StartTime)

		if err := uc.repository.CreateAlert(ctx, &newAlert); err != nil {
			if goerr.HasTag(err, errs.TagDuplicateAlert) {
				// Another run won the race for this shift.
				result.Skipped++
				continue
			}
			errs.Handle(ctx, goerr.Wrap(err, "failed to create alert during monitor run",
				goerr.TV(errutil.ShiftIDKey, s.ID)))
			continue
		}

		result.AlertsCreated++
		logger.Info("alert created by monitor",
			"alert_id", newAlert.ID,
			"shift_id", s.ID,
			"alert_type", newAlert.AlertType,
			"priority", newAlert.Priority,
			"urgency_score", urgencyResult.Score,
			"factors", urgencyResult.Factors)

		uc.notifyCreated(ctx, &newAlert)
	}

	logger.Info("monitor run finished",
		"monitored", result.Monitored,
		"alerts_created", result.AlertsCreated,
		"skipped", result.Skipped)

	return result, nil
}

// EscalateStaleAlerts escalates unresolved alerts whose last lifecycle
// action is older than the configured stale-after duration, raising priority
// one rank per level. Alerts at the ceiling are left alone. Returns the
// number of alerts escalated.
func (uc *UseCases) EscalateStaleAlerts(ctx context.Context) (int, error) {
	alerts, err := uc.repository.GetAlertsByStatus(ctx, []types.AlertStatus{
		types.AlertStatusActive,
		types.AlertStatusAcknowledged,
	}, 0, 0)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list unresolved alerts",
			goerr.T(errs.TagDatabase))
	}

	now := clock.Now(ctx)
	escalated := 0
	for _, a := range alerts {
		if a.EscalationLevel >= alert.MaxEscalationLevel {
			continue
		}
		if now.Sub(a.LastActionAt()) < uc.staleAfter {
			continue
		}

		if err := a.Escalate(ctx, a.Priority.Raise()); err != nil {
			errs.Handle(ctx, goerr.Wrap(err, "failed to escalate stale alert",
				goerr.TV(errutil.AlertIDKey, a.ID)))
			continue
		}
		if err := uc.repository.PutAlert(ctx, a); err != nil {
			errs.Handle(ctx, goerr.Wrap(err, "failed to save escalated alert",
				goerr.TV(errutil.AlertIDKey, a.ID)))
			continue
		}

		escalated++
		logging.From(ctx).Info("stale alert escalated",
			"alert_id", a.ID,
			"escalation_level", a.EscalationLevel,
			"priority", a.Priority)

		uc.notifyEscalated(ctx, a)
	}

	return escalated, nil
}
