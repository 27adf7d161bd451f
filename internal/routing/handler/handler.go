// Package handler exposes the internal routing trigger endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"haven/internal/platform/middleware"
	"haven/internal/routing/models"
	id "haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/httputil"
)

// Service defines the interface for routing operations.
type Service interface {
	Route(ctx context.Context, signalID id.SignalID) (models.RoutingResult, error)
}

// Handler handles routing endpoints. These are internal: the caller is
// the signal dispatch worker or an operator, never a family device.
type Handler struct {
	logger  *slog.Logger
	routing Service
}

// New creates a new routing Handler.
func New(routing Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, routing: routing}
}

// Register registers the routing routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	routingRouter := chi.NewRouter()
	routingRouter.Use(middleware.Recovery(h.logger))
	routingRouter.Use(middleware.RequestID)
	routingRouter.Use(middleware.Logger(h.logger))
	routingRouter.Use(middleware.Timeout(30 * time.Second))
	routingRouter.Post("/signals/{signalID}/route", h.handleRoute)

	r.Mount("/internal", routingRouter)
}

type routeResponse struct {
	Success   bool   `json:"success"`
	Skipped   bool   `json:"skipped"`
	RoutingID string `json:"routingId,omitempty"`
}

// handleRoute runs the full routing pipeline for one signal.
func (h *Handler) handleRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	signalID := id.SignalID(chi.URLParam(r, "signalID"))
	if signalID.IsEmpty() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing signal id"))
		return
	}

	result, err := h.routing.Route(ctx, signalID)
	if result.Skipped {
		reason := ""
		if err != nil {
			reason = err.Error()
		}
		// Skips are terminal but not failures: the caller must not retry.
		h.logger.InfoContext(ctx, "routing skipped",
			"signal_id", signalID,
			"reason", reason,
			"request_id", requestID,
		)
		httputil.WriteJSON(w, http.StatusOK, routeResponse{Skipped: true})
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "routing failed",
			"signal_id", signalID,
			"error", err.Error(),
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, routeResponse{
		Success:   true,
		RoutingID: result.RoutingID.String(),
	})
}
