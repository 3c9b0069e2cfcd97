package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type AlertID string

func (x AlertID) String() string {
	return string(x)
}

func NewAlertID() AlertID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return AlertID(id.String())
}

func (x AlertID) Validate() error {
	if x == EmptyAlertID {
		return goerr.New("empty alert ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid alert ID format", goerr.V("id", x))
	}
	return nil
}

const (
	EmptyAlertID AlertID = ""
)

// UserID identifies an operator acting on an alert.
type UserID string

func (x UserID) String() string {
	return string(x)
}

const (
	EmptyUserID UserID = ""
)

// AlertStatus is the lifecycle state of an urgent shift alert. Resolved is
// terminal.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

var alertStatusLabels = map[AlertStatus]string{
	AlertStatusActive:       "🔴 Active",
	AlertStatusAcknowledged: "👀 Acknowledged",
	AlertStatusResolved:     "✅️ Resolved",
}

func (s AlertStatus) String() string {
	return string(s)
}

func (s AlertStatus) Label() string {
	return alertStatusLabels[s]
}

func (s AlertStatus) Validate() error {
	switch s {
	case AlertStatusActive, AlertStatusAcknowledged, AlertStatusResolved:
		return nil
	}
	return goerr.New("invalid alert status", goerr.V("status", s))
}

// AlertType classifies why a shift is at risk. The classification is
// computed by the urgency calculator, never chosen by a user.
type AlertType string

const (
	AlertTypeUnassigned24h  AlertType = "unassigned_24h"
	AlertTypeUnconfirmed12h AlertType = "unconfirmed_12h"

	EmptyAlertType AlertType = ""
)

var alertTypeLabels = map[AlertType]string{
	AlertTypeUnassigned24h:  "🕳️ Unassigned (24h window)",
	AlertTypeUnconfirmed12h: "⏳ Unconfirmed (12h window)",
}

func (t AlertType) String() string {
	return string(t)
}

func (t AlertType) Label() string {
	return alertTypeLabels[t]
}

func (t AlertType) Validate() error {
	switch t {
	case AlertTypeUnassigned24h, AlertTypeUnconfirmed12h:
		return nil
	}
	return goerr.New("invalid alert type", goerr.V("alert_type", t))
}

// AlertPriority is the operator-facing severity of an alert. It is derived
// from the urgency score at creation and may be raised by escalation.
type AlertPriority string

const (
	AlertPriorityLow      AlertPriority = "low"
	AlertPriorityMedium   AlertPriority = "medium"
	AlertPriorityHigh     AlertPriority = "high"
	AlertPriorityCritical AlertPriority = "critical"

	EmptyAlertPriority AlertPriority = ""
)

var alertPriorityLabels = map[AlertPriority]string{
	AlertPriorityLow:      "🟢 Low",
	AlertPriorityMedium:   "🟡 Medium",
	AlertPriorityHigh:     "🔴 High",
	AlertPriorityCritical: "🚨 Critical",
}

var alertPriorityRanks = map[AlertPriority]int{
	AlertPriorityLow:      1,
	AlertPriorityMedium:   2,
	AlertPriorityHigh:     3,
	AlertPriorityCritical: 4,
}

func (p AlertPriority) String() string {
	return string(p)
}

func (p AlertPriority) Label() string {
	return alertPriorityLabels[p]
}

// Rank returns the ordering of the priority, higher is more severe. Unknown
// priorities rank 0.
func (p AlertPriority) Rank() int {
	return alertPriorityRanks[p]
}

// Raise returns the next priority up, or the same priority when already at
// critical.
func (p AlertPriority) Raise() AlertPriority {
	switch p {
	case AlertPriorityLow:
		return AlertPriorityMedium
	case AlertPriorityMedium:
		return AlertPriorityHigh
	case AlertPriorityHigh, AlertPriorityCritical:
		return AlertPriorityCritical
	}
	return p
}

func (p AlertPriority) Validate() error {
	switch p {
	case AlertPriorityLow, AlertPriorityMedium, AlertPriorityHigh, AlertPriorityCritical:
		return nil
	}
	return goerr.New("invalid alert priority", goerr.V("priority", p))
}
