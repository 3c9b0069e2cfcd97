package urgency

import (
	"context"
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/model/shift"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/utils/clock"
)

const (
	// Score terms. The time pressure term never drops to zero for a
	// candidate shift so the score stays monotonic but bounded below.
	timeBaselineScore = 5.0
	timeMaxScore      = 50.0
	priorityWeight    = 8.0
	certWeight        = 5.0
	certCountCap      = 3

	// Non-candidate shifts score below this by construction.
	lowScoreCeiling = 5.0

	// Priority derivation cutoffs.
	criticalCutoff = 85.0
	highCutoff     = 65.0
	mediumCutoff   = 45.0
)

const (
	FactorTimePressure              = "time_pressure"
	FactorShiftOverdue              = "shift_overdue"
	FactorHighPriority              = "high_priority"
	FactorSpecializedCertifications = "specialized_certifications"
)

type Config struct {
	// UnassignedWindow is how far ahead an unassigned shift triggers an
	// alert. UnconfirmedWindow is the same for assigned-but-unconfirmed
	// shifts.
	UnassignedWindow  time.Duration
	UnconfirmedWindow time.Duration
}

func DefaultConfig() Config {
	return Config{
		UnassignedWindow:  24 * time.Hour,
		UnconfirmedWindow: 12 * time.Hour,
	}
}

// Calculator computes the urgency score and alert classification of a shift
// snapshot. It is pure: no I/O, deterministic given the shift and the
// context clock.
type Calculator struct {
	cfg Config
}

func New(cfg Config) *Calculator {
	if cfg.UnassignedWindow <= 0 {
		cfg.UnassignedWindow = DefaultConfig().UnassignedWindow
	}
	if cfg.UnconfirmedWindow <= 0 {
		cfg.UnconfirmedWindow = DefaultConfig().UnconfirmedWindow
	}
	return &Calculator{cfg: cfg}
}

type Result struct {
	Score           float64         `json:"urgency_score"`
	AlertType       types.AlertType `json:"alert_type,omitempty"`
	ShouldAlert     bool            `json:"should_alert"`
	HoursUntilShift float64         `json:"hours_until_shift"`
	Factors         []string        `json:"factors,omitempty"`
}

// Priority derives the initial alert priority from the score.
func (x Result) Priority() types.AlertPriority {
	switch {
	case x.Score >= criticalCutoff:
		return types.AlertPriorityCritical
	case x.Score >= highCutoff:
		return types.AlertPriorityHigh
	case x.Score >= mediumCutoff:
		return types.AlertPriorityMedium
	default:
		return types.AlertPriorityLow
	}
}

// Window returns the alerting window for the given type, zero for unknown
// types.
func (c *Calculator) Window(alertType types.AlertType) time.Duration {
	switch alertType {
	case types.AlertTypeUnassigned24h:
		return c.cfg.UnassignedWindow
	case types.AlertTypeUnconfirmed12h:
		return c.cfg.UnconfirmedWindow
	}
	return 0
}

// MaxWindow returns the widest alerting window, the cutoff for candidate
// shift queries.
func (c *Calculator) MaxWindow() time.Duration {
	if c.cfg.UnassignedWindow > c.cfg.UnconfirmedWindow {
		return c.cfg.UnassignedWindow
	}
	return c.cfg.UnconfirmedWindow
}

// Calculate scores a shift snapshot against the context clock. It never
// fails: malformed snapshots (e.g. an assigned shift without a guard) fall
// into the unconfirmed classification rather than being rejected.
func (c *Calculator) Calculate(ctx context.Context, s *shift.Shift) Result {
	hoursUntil := s.StartTime.Sub(clock.Now(ctx)).Hours()

	result := Result{
		HoursUntilShift: hoursUntil,
	}

	switch s.Status {
	case types.ShiftStatusUnassigned:
		result.AlertType = types.AlertTypeUnassigned24h
	case types.ShiftStatusAssigned:
		// An assigned shift with no guard reference is inconsistent data;
		// it still needs confirmation, so it classifies as unconfirmed.
		if !s.IsAssignmentConfirmed() || !s.HasAssignedGuard() {
			result.AlertType = types.AlertTypeUnconfirmed12h
		}
	}

	if result.AlertType == types.EmptyAlertType {
		// Confirmed, running, finished or cancelled shifts never alert and
		// score below the low ceiling.
		return result
	}

	window := c.Window(result.AlertType).Hours()

	// Past-start shifts contribute maximal time pressure, not exclusion.
	pressureHours := hoursUntil
	if pressureHours < 0 {
		pressureHours = 0
		result.Factors = append(result.Factors, FactorShiftOverdue)
	}

	if pressureHours >= window {
		result.Score += timeBaselineScore
	} else {
		result.Score += timeBaselineScore +
			(timeMaxScore-timeBaselineScore)*(window-pressureHours)/window
		result.Factors = append(result.Factors, FactorTimePressure)
	}

	result.Score += float64(shift.PriorityRoutine+1-s.Priority) * priorityWeight
	if s.Priority <= 2 {
		result.Factors = append(result.Factors, FactorHighPriority)
	}

	if n := len(s.RequiredCertifications); n > 0 {
		if n > certCountCap {
			n = certCountCap
		}
		result.Score += float64(n) * certWeight
		result.Factors = append(result.Factors, FactorSpecializedCertifications)
	}

	result.ShouldAlert = hoursUntil <= window

	return result
}
