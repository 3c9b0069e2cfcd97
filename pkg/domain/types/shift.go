package types

import (
	"github.com/m-mizutani/goerr/v2"
)

type ShiftID string

func (x ShiftID) String() string {
	return string(x)
}

const (
	EmptyShiftID ShiftID = ""
)

type GuardID string

func (x GuardID) String() string {
	return string(x)
}

const (
	EmptyGuardID GuardID = ""
)

// ShiftStatus is the scheduling state of a work shift, owned by the shift
// management subsystem. This engine only reads it.
type ShiftStatus string

const (
	ShiftStatusUnassigned ShiftStatus = "unassigned"
	ShiftStatusAssigned   ShiftStatus = "assigned"
	ShiftStatusConfirmed  ShiftStatus = "confirmed"
	ShiftStatusInProgress ShiftStatus = "in_progress"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusCancelled  ShiftStatus = "cancelled"
	ShiftStatusNoShow     ShiftStatus = "no_show"
)

func (s ShiftStatus) String() string {
	return string(s)
}

func (s ShiftStatus) Validate() error {
	switch s {
	case ShiftStatusUnassigned, ShiftStatusAssigned, ShiftStatusConfirmed,
		ShiftStatusInProgress, ShiftStatusCompleted, ShiftStatusCancelled,
		ShiftStatusNoShow:
		return nil
	}
	return goerr.New("invalid shift status", goerr.V("status", s))
}

// AssignmentStatus is the state of a guard's assignment to a shift. Present
// only when a guard is assigned.
type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusConfirmed AssignmentStatus = "confirmed"

	EmptyAssignmentStatus AssignmentStatus = ""
)

func (s AssignmentStatus) String() string {
	return string(s)
}

func (s AssignmentStatus) Validate() error {
	switch s {
	case AssignmentStatusPending, AssignmentStatusConfirmed, EmptyAssignmentStatus:
		return nil
	}
	return goerr.New("invalid assignment status", goerr.V("status", s))
}
