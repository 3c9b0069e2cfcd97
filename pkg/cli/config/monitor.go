package config

import (
	"log/slog"
	"time"

	"github.com/guardline/shiftwatch/pkg/service/urgency"
	"github.com/urfave/cli/v3"
)

type Monitor struct {
	interval          time.Duration
	timeout           time.Duration
	unassignedWindow  time.Duration
	unconfirmedWindow time.Duration
	staleAfter        time.Duration
}

func (x *Monitor) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "monitor-interval",
			Usage:       "Interval between shift scans",
			Category:    "Monitor",
			Sources:     cli.EnvVars("SHIFTWATCH_MONITOR_INTERVAL"),
			Value:       5 * time.Minute,
			Destination: &x.interval,
		},
		&cli.DurationFlag{
			Name:        "monitor-timeout",
			Usage:       "Timeout of a single shift scan",
			Category:    "Monitor",
			Sources:     cli.EnvVars("SHIFTWATCH_MONITOR_TIMEOUT"),
			Value:       60 * time.Second,
			Destination: &x.timeout,
		},
		&cli.DurationFlag{
			Name:        "unassigned-window",
			Usage:       "How far ahead an unassigned shift triggers an alert",
			Category:    "Monitor",
			Sources:     cli.EnvVars("SHIFTWATCH_UNASSIGNED_WINDOW"),
			Value:       24 * time.Hour,
			Destination: &x.unassignedWindow,
		},
		&cli.DurationFlag{
			Name:        "unconfirmed-window",
			Usage:       "How far ahead an unconfirmed assignment triggers an alert",
			Category:    "Monitor",
			Sources:     cli.EnvVars("SHIFTWATCH_UNCONFIRMED_WINDOW"),
			Value:       12 * time.Hour,
			Destination: &x.unconfirmedWindow,
		},
		&cli.DurationFlag{
			Name:        "stale-after",
			Usage:       "How long an unresolved alert may sit without action before escalation",
			Category:    "Monitor",
			Sources:     cli.EnvVars("SHIFTWATCH_STALE_AFTER"),
			Value:       time.Hour,
			Destination: &x.staleAfter,
		},
	}
}

func (x Monitor) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("interval", x.interval),
		slog.Duration("timeout", x.timeout),
		slog.Duration("unassigned_window", x.unassignedWindow),
		slog.Duration("unconfirmed_window", x.unconfirmedWindow),
		slog.Duration("stale_after", x.staleAfter),
	)
}

func (x *Monitor) Interval() time.Duration {
	return x.interval
}

func (x *Monitor) Timeout() time.Duration {
	return x.timeout
}

func (x *Monitor) StaleAfter() time.Duration {
	return x.staleAfter
}

func (x *Monitor) Calculator() *urgency.Calculator {
	return urgency.New(urgency.Config{
		UnassignedWindow:  x.unassignedWindow,
		UnconfirmedWindow: x.unconfirmedWindow,
	})
}
