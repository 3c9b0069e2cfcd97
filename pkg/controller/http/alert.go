package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/guardline/shiftwatch/pkg/domain/model/errs"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/usecase"
	"github.com/guardline/shiftwatch/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

func respondJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(r.Context()).Error("failed to encode response", "error", err)
	}
}

func alertCreateHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input usecase.CreateAlertInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			handleError(w, r, goerr.Wrap(err, "failed to decode alert",
				goerr.T(errs.TagInvalidRequest)))
			return
		}

		created, err := uc.CreateAlert(r.Context(), input)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusCreated, created)
	}
}

func alertListHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var statuses []types.AlertStatus
		for _, raw := range r.URL.Query()["status"] {
			s := types.AlertStatus(raw)
			if err := s.Validate(); err != nil {
				handleError(w, r, goerr.Wrap(err, "invalid status filter",
					goerr.T(errs.TagInvalidRequest)))
				return
			}
			statuses = append(statuses, s)
		}

		offset := queryInt(r, "offset")
		limit := queryInt(r, "limit")

		alerts, err := uc.ListAlerts(r.Context(), statuses, offset, limit)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, map[string]any{"alerts": alerts})
	}
}

func alertGetHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertID := types.AlertID(chi.URLParam(r, "id"))

		a, err := uc.GetAlert(r.Context(), alertID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, a)
	}
}

type acknowledgeRequest struct {
	UserID types.UserID `json:"user_id"`
}

func alertAcknowledgeHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertID := types.AlertID(chi.URLParam(r, "id"))

		var req acknowledgeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(err, "failed to decode request",
				goerr.T(errs.TagInvalidRequest)))
			return
		}

		a, err := uc.AcknowledgeAlert(r.Context(), alertID, req.UserID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, a)
	}
}

type resolveRequest struct {
	UserID types.UserID `json:"user_id"`
	Reason string       `json:"reason"`
}

func alertResolveHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertID := types.AlertID(chi.URLParam(r, "id"))

		var req resolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(err, "failed to decode request",
				goerr.T(errs.TagInvalidRequest)))
			return
		}

		a, err := uc.ResolveAlert(r.Context(), alertID, req.UserID, req.Reason)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, a)
	}
}

type escalateRequest struct {
	Priority types.AlertPriority `json:"priority,omitempty"`
}

func alertEscalateHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alertID := types.AlertID(chi.URLParam(r, "id"))

		var req escalateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handleError(w, r, goerr.Wrap(err, "failed to decode request",
				goerr.T(errs.TagInvalidRequest)))
			return
		}

		a, err := uc.EscalateAlert(r.Context(), usecase.EscalationRequest{
			AlertID:  alertID,
			Priority: req.Priority,
		})
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, a)
	}
}

func monitorRunHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := uc.MonitorShifts(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, result)
	}
}

func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
