package memory

import (
	"context"
	"sort"
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

func (r *Memory) CreateAlert(ctx context.Context, a *alert.Alert) error {
	if err := a.Validate(); err != nil {
		return r.eb.Wrap(err, "invalid alert", goerr.T(errs.TagValidation))
	}

	r.alertMu.Lock()
	defer r.alertMu.Unlock()

	if _, ok := r.alerts[a.ID]; ok {
		return r.eb.New("alert ID already exists",
			goerr.T(errs.TagConflict),
			goerr.TV(errutil.AlertIDKey, a.ID))
	}
	if existingID, ok := r.activeByShift[a.ShiftID]; ok {
		return r.eb.New("an active alert already exists for this shift",
			goerr.T(errs.TagDuplicateAlert),
			goerr.TV(errutil.ShiftIDKey, a.ShiftID),
			goerr.TV(errutil.AlertIDKey, existingID))
	}

	// Store a copy to prevent external modification
	alertCopy := *a
	r.alerts[a.ID] = &alertCopy
	if a.Status == types.AlertStatusActive {
		r.activeByShift[a.ShiftID] = a.ID
	}

	return nil
}

func (r *Memory) GetAlert(ctx context.Context, alertID types.AlertID) (*alert.Alert, error) {
	r.alertMu.RLock()
	defer r.alertMu.RUnlock()

	a, ok := r.alerts[alertID]
	if !ok {
		return nil, r.eb.New("alert not found",
			goerr.T(errs.TagNotFound),
			goerr.TV(errutil.AlertIDKey, alertID))
	}

	alertCopy := *a
	return &alertCopy, nil
}

func (r *Memory) PutAlert(ctx context.Context, a *alert.Alert) error {
	if err := a.Validate(); err != nil {
		return r.eb.Wrap(err, "invalid alert", goerr.T(errs.TagValidation))
	}

	r.alertMu.Lock()
	defer r.alertMu.Unlock()

	stored, ok := r.alerts[a.ID]
	if !ok {
		return r.eb.New("alert not found",
			goerr.T(errs.TagNotFound),
			goerr.TV(errutil.AlertIDKey, a.ID))
	}

	// Keep the active-by-shift index in sync with status transitions.
	if stored.Status == types.AlertStatusActive && a.Status != types.AlertStatusActive {
		if r.activeByShift[a.ShiftID] == a.ID {
			delete(r.activeByShift, a.ShiftID)
		}
	}

	alertCopy := *a
	r.alerts[a.ID] = &alertCopy
	return nil
}

func (r *Memory) GetAlertsByStatus(ctx context.Context, statuses []types.AlertStatus, offset, limit int) ([]*alert.Alert, error) {
	r.alertMu.RLock()
	defer r.alertMu.RUnlock()

	wanted := make(map[types.AlertStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var matched []*alert.Alert
	for _, a := range r.alerts {
		if len(wanted) > 0 && !wanted[a.Status] {
			continue
		}
		alertCopy := *a
		matched = append(matched, &alertCopy)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(matched) {
			return nil, nil
		}
		matched = matched[offset:]
	}
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, nil
}

func (r *Memory) GetActiveAlertsByShifts(ctx context.Context, shiftIDs []types.ShiftID) (map[types.ShiftID]*alert.Alert, error) {
	r.alertMu.RLock()
	defer r.alertMu.RUnlock()

	result := make(map[types.ShiftID]*alert.Alert)
	for _, shiftID := range shiftIDs {
		alertID, ok := r.activeByShift[shiftID]
		if !ok {
			continue
		}
		if a, ok := r.alerts[alertID]; ok {
			alertCopy := *a
			result[shiftID] = &alertCopy
		}
	}

	return result, nil
}

func (r *Memory) GetAlertsScheduledBefore(ctx context.Context, cutoff time.Time) ([]*alert.Alert, error) {
	r.alertMu.RLock()
	defer r.alertMu.RUnlock()

	var matched []*alert.Alert
	for _, a := range r.alerts {
		if a.Status == types.AlertStatusResolved {
			continue
		}
		if !a.ShiftStartAt.Before(cutoff) {
			continue
		}
		alertCopy := *a
		matched = append(matched, &alertCopy)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ShiftStartAt.Before(matched[j].ShiftStartAt)
	})

	return matched, nil
}
