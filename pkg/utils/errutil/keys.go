package errutil

import (
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var (
	// IDs
	AlertIDKey = goerr.NewTypedKey[types.AlertID]("alert_id")
	ShiftIDKey = goerr.NewTypedKey[types.ShiftID]("shift_id")
	UserIDKey  = goerr.NewTypedKey[types.UserID]("user_id")

	// Values
	StatusKey          = goerr.NewTypedKey[string]("status")
	OperationKey       = goerr.NewTypedKey[string]("operation")
	RepositoryKey      = goerr.NewTypedKey[string]("repository")
	CollectionKey      = goerr.NewTypedKey[string]("collection")
	EscalationLevelKey = goerr.NewTypedKey[int]("escalation_level")
	LimitKey           = goerr.NewTypedKey[int]("limit")
	OffsetKey          = goerr.NewTypedKey[int]("offset")
	DurationKey        = goerr.NewTypedKey[time.Duration]("duration")
)
