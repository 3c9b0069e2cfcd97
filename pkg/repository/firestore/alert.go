package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// shiftIDChunkSize bounds the "in" filter per Firestore's disjunction limit.
const shiftIDChunkSize = 30

func (r *Client) CreateAlert(ctx context.Context, a *alert.Alert) error {
	if err := a.Validate(); err != nil {
		return r.eb.Wrap(err, "invalid alert", goerr.T(errs.TagValidation))
	}

	// The duplicate check and the create run in one transaction so that
	// concurrent monitor runs cannot both insert an active alert for the
	// same shift.
	err := r.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := r.db.Collection(collectionAlerts).
			Where("ShiftID", "==", a.ShiftID.String()).
			Where("Status", "==", types.AlertStatusActive.String()).
			Limit(1)

		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query active alerts for shift",
				goerr.TV(errutil.ShiftIDKey, a.ShiftID))
		}
		if len(docs) > 0 {
			return goerr.New("an active alert already exists for this shift",
				goerr.T(errs.TagDuplicateAlert),
				goerr.TV(errutil.ShiftIDKey, a.ShiftID),
				goerr.V("existing_alert_id", docs[0].Ref.ID))
		}

		doc := r.db.Collection(collectionAlerts).Doc(a.ID.String())
		if err := tx.Create(doc, a); err != nil {
			if status.Code(err) == codes.AlreadyExists {
				return goerr.Wrap(err, "alert ID already exists",
					goerr.T(errs.TagConflict),
					goerr.TV(errutil.AlertIDKey, a.ID))
			}
			return goerr.Wrap(err, "failed to create alert",
				goerr.TV(errutil.AlertIDKey, a.ID))
		}

		return nil
	})
	if err != nil {
		if goerr.HasTag(err, errs.TagDuplicateAlert) || goerr.HasTag(err, errs.TagConflict) {
			return r.eb.Wrap(err, "alert creation rejected")
		}
		return r.eb.Wrap(err, "failed to create alert",
			goerr.T(errs.TagDatabase),
			goerr.TV(errutil.AlertIDKey, a.ID))
	}

	return nil
}

func (r *Client) GetAlert(ctx context.Context, alertID types.AlertID) (*alert.Alert, error) {
	doc, err := r.db.Collection(collectionAlerts).Doc(alertID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, r.eb.Wrap(err, "alert not found",
				goerr.T(errs.TagNotFound),
				goerr.TV(errutil.AlertIDKey, alertID))
		}
		return nil, r.eb.Wrap(err, "failed to get alert",
			goerr.T(errs.TagDatabase),
			goerr.TV(errutil.AlertIDKey, alertID))
	}

	var a alert.Alert
	if err := doc.DataTo(&a); err != nil {
		return nil, r.eb.Wrap(err, "failed to unmarshal alert",
			goerr.T(errs.TagDatabase),
			goerr.TV(errutil.AlertIDKey, alertID))
	}

	return &a, nil
}

func (r *Client) PutAlert(ctx context.Context, a *alert.Alert) error {
	if err := a.Validate(); err != nil {
		return r.eb.Wrap(err, "invalid alert", goerr.T(errs.TagValidation))
	}

	doc := r.db.Collection(collectionAlerts).Doc(a.ID.String())
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return r.eb.Wrap(err, "alert not found",
				goerr.T(errs.TagNotFound),
				goerr.TV(errutil.AlertIDKey, a.ID))
		}
		return r.eb.Wrap(err, "failed to get alert",
			goerr.T(errs.TagDatabase),
			goerr.TV(errutil.AlertIDKey, a.ID))
	}

	if _, err := doc.Set(ctx, a); err != nil {
		return r.eb.Wrap(err, "failed to update alert",
			goerr.T(errs.TagDatabase),
			goerr.TV(errutil.AlertIDKey, a.ID))
	}

	return nil
}

func (r *Client) GetAlertsByStatus(ctx context.Context, statuses []types.AlertStatus, offset, limit int) ([]*alert.Alert, error) {
	query := r.db.Collection(collectionAlerts).Query
	if len(statuses) > 0 {
		query = query.Where("Status", "in", statusStrings(statuses))
	}
	query = query.OrderBy("CreatedAt", firestore.Asc)
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	return r.collectAlerts(ctx, query)
}

func (r *Client) GetActiveAlertsByShifts(ctx context.Context, shiftIDs []types.ShiftID) (map[types.ShiftID]*alert.Alert, error) {
	result := make(map[types.ShiftID]*alert.Alert)

	for start := 0; start < len(shiftIDs); start += shiftIDChunkSize {
		end := start + shiftIDChunkSize
		if end > len(shiftIDs) {
			end = len(shiftIDs)
		}

		chunk := make([]string, 0, end-start)
		for _, id := range shiftIDs[start:end] {
			chunk = append(chunk, id.String())
		}

		query := r.db.Collection(collectionAlerts).
			Where("Status", "==", types.AlertStatusActive.String()).
			Where("ShiftID", "in", chunk)

		alerts, err := r.collectAlerts(ctx, query)
		if err != nil {
			return nil, err
		}
		for _, a := range alerts {
			result[a.ShiftID] = a
		}
	}

	return result, nil
}

func (r *Client) GetAlertsScheduledBefore(ctx context.Context, cutoff time.Time) ([]*alert.Alert, error) {
	query := r.db.Collection(collectionAlerts).
		Where("Status", "in", statusStrings([]types.AlertStatus{
			types.AlertStatusActive,
			types.AlertStatusAcknowledged,
		})).
		Where("ShiftStartAt", "<", cutoff)

	return r.collectAlerts(ctx, query)
}

func (r *Client) collectAlerts(ctx context.Context, query firestore.Query) ([]*alert.Alert, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var alerts []*alert.Alert
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, r.eb.Wrap(err, "failed to iterate alerts",
				goerr.T(errs.TagDatabase),
				goerr.TV(errutil.CollectionKey, collectionAlerts))
		}

		var a alert.Alert
		if err := doc.DataTo(&a); err != nil {
			return nil, r.eb.Wrap(err, "failed to unmarshal alert",
				goerr.T(errs.TagDatabase),
				goerr.V("doc_id", doc.Ref.ID))
		}
		alerts = append(alerts, &a)
	}

	return alerts, nil
}

func statusStrings(statuses []types.AlertStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
