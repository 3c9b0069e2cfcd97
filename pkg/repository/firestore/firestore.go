package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/guardline/shiftwatch/pkg/domain/interfaces"
	"github.com/guardline/shiftwatch/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

const (
	collectionAlerts = "urgent_shift_alerts"
	collectionShifts = "shifts"
)

// Client is the Firestore-backed repository. It also reads the shifts
// collection maintained by the shift management subsystem.
type Client struct {
	db *firestore.Client
	eb *goerr.Builder
}

var _ interfaces.Repository = &Client{}
var _ interfaces.ShiftSource = &Client{}

func New(ctx context.Context, projectID, databaseID string) (*Client, error) {
	db, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID))
	}

	return &Client{
		db: db,
		eb: goerr.NewBuilder(goerr.TV(errutil.RepositoryKey, "firestore")),
	}, nil
}

func (r *Client) Close() error {
	return r.db.Close()
}
