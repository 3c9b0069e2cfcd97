package notifier

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/guardline/shiftwatch/pkg/domain/interfaces"
	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
)

// Console is a console-based alert notifier with color formatting. Useful
// for CLI mode and debugging; production deployments plug in a real
// dispatcher behind the same interface.
type Console struct{}

func NewConsole() interfaces.AlertNotifier {
	return &Console{}
}

func (n *Console) NotifyAlertCreated(ctx context.Context, a *alert.Alert) {
	red := color.New(color.FgRed, color.Bold)
	red.Println("Urgent Shift Alert:")
	printAlert(a)
}

func (n *Console) NotifyAlertEscalated(ctx context.Context, a *alert.Alert) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Printf("Alert Escalated (level %d):\n", a.EscalationLevel)
	printAlert(a)
}

func printAlert(a *alert.Alert) {
	white := color.New(color.FgWhite)

	white.Printf("  Alert:    %s\n", a.ID)
	white.Printf("  Shift:    %s\n", a.ShiftID)
	fmt.Printf("  Type:     %s\n", a.AlertType.Label())
	fmt.Printf("  Priority: %s\n", a.Priority.Label())
	fmt.Printf("  Status:   %s\n", a.Status.Label())
	fmt.Printf("  Starts in %.1f hours (%s)\n\n", a.HoursUntilShift,
		a.ShiftStartAt.Format("2006-01-02 15:04"))
}
