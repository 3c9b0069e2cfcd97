package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/model/shift"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/repository/memory"
	"github.com/guardline/shiftwatch/pkg/usecase"
	"github.com/guardline/shiftwatch/pkg/utils/clock"
	"github.com/m-mizutani/gt"
)

type recordingNotifier struct {
	mu        sync.Mutex
	created   []*alert.Alert
	escalated []*alert.Alert
}

func (n *recordingNotifier) NotifyAlertCreated(ctx context.Context, a *alert.Alert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, a)
}

func (n *recordingNotifier) NotifyAlertEscalated(ctx context.Context, a *alert.Alert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.escalated = append(n.escalated, a)
}

var testBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testCtx() context.Context {
	return clock.With(context.Background(), func() time.Time { return testBase })
}

func putShift(t *testing.T, repo *memory.Memory, id string, status types.ShiftStatus, startIn time.Duration, priority int) {
	t.Helper()
	s := &shift.Shift{
		ID:        types.ShiftID(id),
		Status:    status,
		StartTime: testBase.Add(startIn),
		EndTime:   testBase.Add(startIn + 8*time.Hour),
		Priority:  priority,
	}
	if status == types.ShiftStatusAssigned {
		s.AssignedGuardID = types.GuardID("guard-1")
		s.AssignmentStatus = types.AssignmentStatusPending
	}
	gt.NoError(t, repo.PutShift(context.Background(), s))
}

func TestMonitorShiftsCreatesAlerts(t *testing.T) {
	ctx := testCtx()
	repo := memory.New()
	notifier := &recordingNotifier{}
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithShiftSource(repo),
		usecase.WithNotifier(notifier),
	)

	putShift(t, repo, "unassigned-in-window", types.ShiftStatusUnassigned, 18*time.Hour, 2)
	putShift(t, repo, "unconfirmed-in-window", types.ShiftStatusAssigned, 6*time.Hour, 3)
	putShift(t, repo, "unconfirmed-outside-window", types.ShiftStatusAssigned, 20*time.Hour, 3)

	result, err := uc.MonitorShifts(ctx)
	gt.NoError(t, err)
	gt.Value(t, result.Monitored).Equal(3)
	gt.Value(t, result.AlertsCreated).Equal(2)
	gt.Value(t, result.Skipped).Equal(1)
	gt.Array(t, notifier.created).Length(2)

	active, err := repo.GetActiveAlertsByShifts(ctx, []types.ShiftID{
		types.ShiftID("unassigned-in-window"),
		types.ShiftID("unconfirmed-in-window"),
	})
	gt.NoError(t, err)
	gt.Value(t, len(active)).Equal(2)
	gt.Value(t, active[types.ShiftID("unassigned-in-window")].AlertType).
		Equal(types.AlertTypeUnassigned24h)
	gt.Value(t, active[types.ShiftID("unconfirmed-in-window")].AlertType).
		Equal(types.AlertTypeUnconfirmed12h)
}

func TestMonitorShiftsIsIdempotent(t *testing.T) {
	ctx := testCtx()
	repo := memory.New()
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithShiftSource(repo),
	)

	putShift(t, repo, "shift-1", types.ShiftStatusUnassigned, 10*time.Hour, 3)
	putShift(t, repo, "shift-2", types.ShiftStatusUnassigned, 5*time.Hour, 3)

	first, err := uc.MonitorShifts(ctx)
	gt.NoError(t, err)
	gt.Value(t, first.AlertsCreated).Equal(2)

	second, err := uc.MonitorShifts(ctx)
	gt.NoError(t, err)
	gt.Value(t, second.AlertsCreated).Equal(0)
	gt.Value(t, second.Skipped).Equal(2)
}

func TestMonitorShiftsAlertsAgainAfterResolution(t *testing.T) {
	ctx := testCtx()
	repo := memory.New()
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithShiftSource(repo),
	)

	putShift(t, repo, "shift-1", types.ShiftStatusUnassigned, 10*time.Hour, 3)

	first, err := uc.MonitorShifts(ctx)
	gt.NoError(t, err)
	gt.Value(t, first.AlertsCreated).Equal(1)

	active, err := repo.GetActiveAlertsByShifts(ctx, []types.ShiftID{types.ShiftID("shift-1")})
	gt.NoError(t, err)
	_, err = uc.ResolveAlert(ctx, active[types.ShiftID("shift-1")].ID,
		types.UserID("supervisor-1"), "false alarm")
	gt.NoError(t, err)

	// The shift is still uncovered, so the next run re-alerts.
	second, err := uc.MonitorShifts(ctx)
	gt.NoError(t, err)
	gt.Value(t, second.AlertsCreated).Equal(1)
}

func TestEscalateStaleAlerts(t *testing.T) {
	repo := memory.New()
	notifier := &recordingNotifier{}
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithShiftSource(repo),
		usecase.WithNotifier(notifier),
		usecase.WithStaleAfter(time.Hour),
	)

	now := testBase
	ctx := clock.With(context.Background(), func() time.Time { return now })

	putShift(t, repo, "shift-1", types.ShiftStatusUnassigned, 10*time.Hour, 3)
	_, err := uc.MonitorShifts(ctx)
	gt.NoError(t, err)

	// Not stale yet.
	escalated, err := uc.EscalateStaleAlerts(ctx)
	gt.NoError(t, err)
	gt.Value(t, escalated).Equal(0)

	now = testBase.Add(2 * time.Hour)
	escalated, err = uc.EscalateStaleAlerts(ctx)
	gt.NoError(t, err)
	gt.Value(t, escalated).Equal(1)
	gt.Array(t, notifier.escalated).Length(1)

	active, err := repo.GetActiveAlertsByShifts(ctx, []types.ShiftID{types.ShiftID("shift-1")})
	gt.NoError(t, err)
	a := active[types.ShiftID("shift-1")]
	gt.Value(t, a.EscalationLevel).Equal(2)

	// The escalation itself resets the staleness timer.
	escalated, err = uc.EscalateStaleAlerts(ctx)
	gt.NoError(t, err)
	gt.Value(t, escalated).Equal(0)
}

func TestEscalateStaleAlertsSkipsCeiling(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(
		usecase.WithRepository(repo),
		usecase.WithShiftSource(repo),
		usecase.WithStaleAfter(time.Hour),
	)

	now := testBase
	ctx := clock.With(context.Background(), func() time.Time { return now })

	putShift(t, repo, "shift-1", types.ShiftStatusUnassigned, 10*time.Hour, 3)
	_, err := uc.MonitorShifts(ctx)
	gt.NoError(t, err)

	for i := 0; i < alert.MaxEscalationLevel-1; i++ {
		now = now.Add(2 * time.Hour)
		escalated, err := uc.EscalateStaleAlerts(ctx)
		gt.NoError(t, err)
		gt.Value(t, escalated).Equal(1)
	}

	// At the ceiling the sweep leaves the alert alone.
	now = now.Add(2 * time.Hour)
	escalated, err := uc.EscalateStaleAlerts(ctx)
	gt.NoError(t, err)
	gt.Value(t, escalated).Equal(0)
}
