package memory

import (
	"sync"

	"github.com/guardline/shiftwatch/pkg/domain/interfaces"
	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/model/shift"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// Memory is the in-memory repository used for development and tests. The
// active-alert index and the alert map are guarded by the same mutex, which
// is what makes create-if-absent atomic.
type Memory struct {
	alertMu sync.RWMutex
	shiftMu sync.RWMutex

	alerts        map[types.AlertID]*alert.Alert
	activeByShift map[types.ShiftID]types.AlertID
	shifts        map[types.ShiftID]*shift.Shift

	eb *goerr.Builder
}

var _ interfaces.Repository = &Memory{}
var _ interfaces.ShiftSource = &Memory{}

func New() *Memory {
	return &Memory{
		alerts:        make(map[types.AlertID]*alert.Alert),
		activeByShift: make(map[types.ShiftID]types.AlertID),
		shifts:        make(map[types.ShiftID]*shift.Shift),
		eb:            goerr.NewBuilder(goerr.TV(errutil.RepositoryKey, "memory")),
	}
}
