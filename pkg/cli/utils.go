package cli

import (
	"context"

	"github.com/guardline/shiftwatch/pkg/cli/config"
	"github.com/guardline/shiftwatch/pkg/domain/interfaces"
	"github.com/guardline/shiftwatch/pkg/repository/memory"
	"github.com/guardline/shiftwatch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, flag := range flags {
		result = append(result, flag...)
	}
	return result
}

// buildRepository opens Firestore when configured, otherwise falls
// back to the in-memory repository. The returned closer releases the
// Firestore client when one was opened.
func buildRepository(ctx context.Context, cfg *config.Firestore) (interfaces.Repository, interfaces.ShiftSource, func(), error) {
	if !cfg.IsConfigured() {
		logging.From(ctx).Warn("Firestore is not configured, using in-memory repository")
		repo := memory.New()
		return repo, repo, func() {}, nil
	}

	client, err := cfg.Configure(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	closer := func() {
		if err := client.Close(); err != nil {
			logging.From(ctx).Error("failed to close firestore client", "error", err)
		}
	}
	return client, client, closer, nil
}
