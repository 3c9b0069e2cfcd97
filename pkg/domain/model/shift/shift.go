package shift

import (
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// PriorityUrgent and PriorityRoutine bound the shift priority scale.
	// 1 is the most urgent, 5 the most routine.
	PriorityUrgent  = 1
	PriorityRoutine = 5
)

// Shift is a snapshot of a scheduled work shift as produced by the shift
// management subsystem. The monitoring engine never mutates it.
type Shift struct {
	ID                     types.ShiftID          `json:"id"`
	Status                 types.ShiftStatus      `json:"status"`
	StartTime              time.Time              `json:"start_time"`
	EndTime                time.Time              `json:"end_time"`
	AssignedGuardID        types.GuardID          `json:"assigned_guard_id,omitempty"`
	AssignmentStatus       types.AssignmentStatus `json:"assignment_status,omitempty"`
	Priority               int                    `json:"priority"`
	RequiredCertifications []string               `json:"required_certifications,omitempty"`
}

func (x *Shift) Validate() error {
	if x.ID == types.EmptyShiftID {
		return goerr.New("empty shift ID")
	}
	if err := x.Status.Validate(); err != nil {
		return goerr.Wrap(err, "invalid shift status")
	}
	if x.Priority < PriorityUrgent || x.Priority > PriorityRoutine {
		return goerr.New("shift priority out of range", goerr.V("priority", x.Priority))
	}
	if err := x.AssignmentStatus.Validate(); err != nil {
		return goerr.Wrap(err, "invalid assignment status")
	}
	return nil
}

func (x *Shift) HasAssignedGuard() bool {
	return x.AssignedGuardID != types.EmptyGuardID
}

func (x *Shift) IsAssignmentConfirmed() bool {
	return x.AssignmentStatus == types.AssignmentStatusConfirmed
}
