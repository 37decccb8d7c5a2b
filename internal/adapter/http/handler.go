package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"traffic-controller/internal/core/port"
	"traffic-controller/internal/core/syncguard"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP
// over the controller, the sync-state view and the URL service.
type Handler struct {
	traffic port.TrafficUseCase
	states  port.SyncStateReader
	urls    port.URLUseCase
	logger  *slog.Logger
	router  chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(traffic port.TrafficUseCase, states port.SyncStateReader, urls port.URLUseCase, logger *slog.Logger) *Handler {
	h := &Handler{traffic: traffic, states: states, urls: urls, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/r/{id}", h.handleRedirect)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Put("/urls/{id}/clicks", h.handleUpdateClicks)

		r.Get("/campaigns/sync-state", h.handleListSyncStates)
		r.Route("/campaigns/{id}", func(r chi.Router) {
			r.Get("/sync-state", h.handleSyncState)
			r.Get("/ledger", h.handleLedger)
			r.Post("/reconcile", h.handleReconcile)
			r.Post("/force-activation", h.handleForceActivate)
			r.Delete("/force-activation", h.handleReleaseForceActivation)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// pathID parses the {id} path parameter. It writes a 400 and returns false
// when the parameter is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to status codes. Anything unexpected is
// logged and reported as 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, port.ErrInvalidClicks):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, port.ErrBusy),
		errors.Is(err, port.ErrStateConflict),
		errors.Is(err, port.ErrNotForceActivated),
		errors.Is(err, port.ErrNotManaged),
		errors.Is(err, port.ErrMisconfigured),
		errors.Is(err, syncguard.ErrAutoSyncActive):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error(op+" error",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("error", err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
