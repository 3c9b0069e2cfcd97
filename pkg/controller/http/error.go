package http

import (
	"net/http"

	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/m-mizutani/goerr/v2"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps the error taxonomy to HTTP statuses. Operational
// failures (database, internal) are reported to Sentry before the
// generic 500 is returned; client errors are not.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case goerr.HasTag(err, errs.TagNotFound):
		respondJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})

	case goerr.HasTag(err, errs.TagValidation),
		goerr.HasTag(err, errs.TagInvalidRequest):
		respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case goerr.HasTag(err, errs.TagDuplicateAlert),
		goerr.HasTag(err, errs.TagConflict),
		goerr.HasTag(err, errs.TagInvalidTransition),
		goerr.HasTag(err, errs.TagMaxEscalation):
		respondJSON(w, r, http.StatusConflict, errorResponse{Error: err.Error()})

	default:
		errs.Handle(r.Context(), err)
		respondJSON(w, r, http.StatusInternalServerError, errorResponse{
			Error: "internal server error",
		})
	}
}
