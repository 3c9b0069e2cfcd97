package memory

import (
	"context"
	"sort"
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/domain/model/shift"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// PutShift stores a shift snapshot, serving as the development and test
// stand-in for the shift management subsystem.
func (r *Memory) PutShift(ctx context.Context, s *shift.Shift) error {
	if err := s.Validate(); err != nil {
		return r.eb.Wrap(err, "invalid shift", goerr.T(errs.TagValidation))
	}

	r.shiftMu.Lock()
	defer r.shiftMu.Unlock()

	shiftCopy := *s
	r.shifts[s.ID] = &shiftCopy
	return nil
}

func (r *Memory) ListUpcomingShifts(ctx context.Context, statuses []types.ShiftStatus, until time.Time) ([]*shift.Shift, error) {
	r.shiftMu.RLock()
	defer r.shiftMu.RUnlock()

	wanted := make(map[types.ShiftStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var matched []*shift.Shift
	for _, s := range r.shifts {
		if len(wanted) > 0 && !wanted[s.Status] {
			continue
		}
		if !s.StartTime.Before(until) {
			continue
		}
		shiftCopy := *s
		matched = append(matched, &shiftCopy)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime.Before(matched[j].StartTime)
	})

	return matched, nil
}
