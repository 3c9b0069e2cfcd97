package cli

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guardline/shiftwatch/pkg/cli/config"
	server "github.com/guardline/shiftwatch/pkg/controller/http"
	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/service/notifier"
	"github.com/guardline/shiftwatch/pkg/usecase"
	"github.com/guardline/shiftwatch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		addr         string
		noMonitor    bool
		sentryCfg    config.Sentry
		firestoreCfg config.Firestore
		monitorCfg   config.Monitor
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("SHIFTWATCH_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.BoolFlag{
				Name:        "no-monitor",
				Usage:       "Disable the periodic shift scan (API only)",
				Sources:     cli.EnvVars("SHIFTWATCH_NO_MONITOR"),
				Destination: &noMonitor,
			},
		},
		sentryCfg.Flags(),
		firestoreCfg.Flags(),
		monitorCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.Default().Info("starting server",
				"addr", addr,
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

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(uc),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			monitorCtx, stopMonitor := context.WithCancel(ctx)
			defer stopMonitor()
			if !noMonitor {
				go runMonitorLoop(monitorCtx, uc, &monitorCfg)
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				stopMonitor()

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}
}

// runMonitorLoop scans upcoming shifts and sweeps stale alerts on a
// fixed interval until the context is canceled. Each run gets its own
// timeout so a slow store cannot stall the loop.
func runMonitorLoop(ctx context.Context, uc *usecase.UseCases, cfg *config.Monitor) {
	logger := logging.From(ctx)
	logger.Info("monitor loop started", "interval", cfg.Interval(), "timeout", cfg.Timeout())

	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("monitor loop stopped")
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())

			result, err := uc.MonitorShifts(runCtx)
			if err != nil {
				errs.Handle(runCtx, err)
			} else {
				logger.Info("shift scan completed",
					"monitored", result.Monitored,
					"created", result.AlertsCreated,
					"skipped", result.Skipped,
				)
			}

			escalated, err := uc.EscalateStaleAlerts(runCtx)
			if err != nil {
				errs.Handle(runCtx, err)
			} else if escalated > 0 {
				logger.Info("stale alerts escalated", "count", escalated)
			}

			cancel()
		}
	}
}
