package firestore

import (
	"context"
	"time"

	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/domain/model/shift"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

// ListUpcomingShifts reads the shifts collection owned by the shift
// management subsystem. This repository never writes to it.
func (r *Client) ListUpcomingShifts(ctx context.Context, statuses []types.ShiftStatus, until time.Time) ([]*shift.Shift, error) {
	query := r.db.Collection(collectionShifts).Query
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = s.String()
		}
		query = query.Where("Status", "in", values)
	}
	query = query.Where("StartTime", "<", until)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var shifts []*shift.Shift
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, r.eb.Wrap(err, "failed to iterate shifts",
				goerr.T(errs.TagDatabase),
				goerr.TV(errutil.CollectionKey, collectionShifts))
		}

		var s shift.Shift
		if err := doc.DataTo(&s); err != nil {
			return nil, r.eb.Wrap(err, "failed to unmarshal shift",
				goerr.T(errs.TagDatabase),
				goerr.V("doc_id", doc.Ref.ID))
		}
		shifts = append(shifts, &s)
	}

	return shifts, nil
}
