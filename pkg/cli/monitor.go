package cli

import (
	"context"

	"github.com/guardline/shiftwatch/pkg/cli/config"
	"github.com/guardline/shiftwatch/pkg/service/notifier"
	"github.com/guardline/shiftwatch/pkg/usecase"
	"github.com/guardline/shiftwatch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMonitor() *cli.Command {
	var (
		sentryCfg    config.Sentry
		firestoreCfg config.Firestore
		monitorCfg   config.Monitor
	)

	flags := joinFlags(
		sentryCfg.Flags(),
		firestoreCfg.Flags(),
		monitorCfg.Flags(),
	)

	return &cli.Command{
		Name:    "monitor",
		Aliases: []string{"m"},
		Usage:   "Run a single shift scan and exit",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.Default().Info("starting shift scan",
				"sentry", sentryCfg,
				"firestore", firestoreCfg,
				"monitor", monitorCfg,
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			repo, shifts, closeRepo, err := buildRepository(ctx, &firestoreCfg)
			if err != nil {
				return err
			}
			defer closeRepo()

			uc := usecase.New(
				usecase.WithRepository(repo),
				usecase.WithShiftSource(shifts),
				usecase.WithNotifier(notifier.NewConsole()),
				usecase.WithCalculator(monitorCfg.Calculator()),
				usecase.WithStaleAfter(monitorCfg.StaleAfter()),
			)

			runCtx, cancel := context.WithTimeout(ctx, monitorCfg.Timeout())
			defer cancel()

			result, err := uc.MonitorShifts(runCtx)
			if err != nil {
				return err
			}
			logging.From(ctx).Info("shift scan completed",
				"monitored", result.Monitored,
				"created", result.AlertsCreated,
				"skipped", result.Skipped,
			)

			escalated, err := uc.EscalateStaleAlerts(runCtx)
			if err != nil {
				return err
			}
			if escalated > 0 {
				logging.From(ctx).Info("stale alerts escalated", "count", escalated)
			}

			return nil
		},
	}
}
