package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/guardline/shiftwatch/pkg/domain/model/alert"
	"github.com/guardline/shiftwatch/pkg/domain/types"
	"github.com/guardline/shiftwatch/pkg/usecase"
)

// UseCase is the invocation surface the HTTP API exposes.
type UseCase interface {
	MonitorShifts(ctx context.Context) (*usecase.MonitorResult, error)
	CreateAlert(ctx context.Context, input usecase.CreateAlertInput) (*alert.Alert, error)
	GetAlert(ctx context.Context, alertID types.AlertID) (*alert.Alert, error)
	ListAlerts(ctx context.Context, statuses []types.AlertStatus, offset, limit int) ([]*alert.Alert, error)
	AcknowledgeAlert(ctx context.Context, alertID types.AlertID, actor types.UserID) (*alert.Alert, error)
	ResolveAlert(ctx context.Context, alertID types.AlertID, actor types.UserID, reason string) (*alert.Alert, error)
	EscalateAlert(ctx context.Context, req usecase.EscalationRequest) (*alert.Alert, error)
}

type Server struct {
	router *chi.Mux
}

func New(uc UseCase) *Server {
	r := chi.NewRouter()
	r.Use(panicRecoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/alerts", func(r chi.Router) {
			r.Post("/", alertCreateHandler(uc))
			r.Get("/", alertListHandler(uc))
			r.Get("/{id}", alertGetHandler(uc))
			r.Post("/{id}/acknowledge", alertAcknowledgeHandler(uc))
			r.Post("/{id}/resolve", alertResolveHandler(uc))
			r.Post("/{id}/escalate", alertEscalateHandler(uc))
		})
		r.Post("/monitor/run", monitorRunHandler(uc))
	})

	return &Server{router: r}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
