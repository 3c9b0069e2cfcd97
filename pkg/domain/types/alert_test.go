package types_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestAlertID(t *testing.T) {
	id := types.NewAlertID()
	gt.NoError(t, id.Validate())
	_, err := uuid.Parse(id.String())
	gt.NoError(t, err)

	gt.Error(t, types.EmptyAlertID.Validate())
	gt.Error(t, types.AlertID("not-a-uuid").Validate())
}

func TestAlertStatus(t *testing.T) {
	for _, s := range []types.AlertStatus{
		types.AlertStatusActive,
		types.AlertStatusAcknowledged,
		types.AlertStatusResolved,
	} {
		gt.NoError(t, s.Validate())
		gt.NotEqual(t, s.Label(), "")
	}
	gt.Error(t, types.AlertStatus("open").Validate())
}

func TestAlertPriorityRank(t *testing.T) {
	gt.True(t, types.AlertPriorityLow.Rank() < types.AlertPriorityMedium.Rank())
	gt.True(t, types.AlertPriorityMedium.Rank() < types.AlertPriorityHigh.Rank())
	gt.True(t, types.AlertPriorityHigh.Rank() < types.AlertPriorityCritical.Rank())
	gt.Equal(t, types.EmptyAlertPriority.Rank(), 0)
}

func TestAlertPriorityRaise(t *testing.T) {
	gt.Equal(t, types.AlertPriorityLow.Raise(), types.AlertPriorityMedium)
	gt.Equal(t, types.AlertPriorityMedium.Raise(), types.AlertPriorityHigh)
	gt.Equal(t, types.AlertPriorityHigh.Raise(), types.AlertPriorityCritical)
	gt.Equal(t, types.AlertPriorityCritical.Raise(), types.AlertPriorityCritical)
}

func TestAlertType(t *testing.T) {
	gt.NoError(t, types.AlertTypeUnassigned24h.Validate())
	gt.NoError(t, types.AlertTypeUnconfirmed12h.Validate())
	gt.Error(t, types.EmptyAlertType.Validate())
	gt.Error(t, types.AlertType("understaffed_48h").Validate())
}

func TestShiftStatus(t *testing.T) {
	gt.NoError(t, types.ShiftStatusUnassigned.Validate())
	gt.NoError(t, types.ShiftStatusNoShow.Validate())
	gt.Error(t, types.ShiftStatus("open").Validate())
}

func TestAssignmentStatus(t *testing.T) {
	gt.NoError(t, types.AssignmentStatusPending.Validate())
	gt.NoError(t, types.AssignmentStatusConfirmed.Validate())
	gt.NoError(t, types.EmptyAssignmentStatus.Validate())
	gt.Error(t, types.AssignmentStatus("maybe").Validate())
}
