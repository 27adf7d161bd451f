// Package handler exposes the device-facing signal endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"haven/internal/platform/audit"
	"haven/internal/platform/metrics"
	"haven/internal/platform/middleware"
	"haven/internal/signal/models"
	id "haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/httputil"
	"haven/pkg/requestcontext"
)

// Store persists incoming signals and serves status reads.
type Store interface {
	Put(ctx context.Context, signal models.SafetySignal) error
	GetSignal(ctx context.Context, signalID id.SignalID) (*models.SafetySignal, error)
}

// BlackoutReader gates family-facing visibility of routed signals.
type BlackoutReader interface {
	IsBlackedOut(ctx context.Context, signalID id.SignalID) (bool, error)
}

// Handler handles the device trigger intake and status endpoints.
type Handler struct {
	logger         *slog.Logger
	store          Store
	blackouts      BlackoutReader
	metrics        *metrics.Metrics
	auditPublisher audit.Publisher
	jwtValidator   middleware.JWTValidator
}

// New creates a new signal Handler.
func New(
	store Store,
	blackouts BlackoutReader,
	jwtValidator middleware.JWTValidator,
	logger *slog.Logger,
	m *metrics.Metrics,
	auditPublisher audit.Publisher) *Handler {
	if auditPublisher == nil {
		auditPublisher = audit.NopPublisher{}
	}
	return &Handler{
		logger:         logger,
		store:          store,
		blackouts:      blackouts,
		metrics:        m,
		auditPublisher: auditPublisher,
		jwtValidator:   jwtValidator,
	}
}

// Register registers the signal routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	signalRouter := chi.NewRouter()
	signalRouter.Use(middleware.Recovery(h.logger))
	signalRouter.Use(middleware.RequestID)
	signalRouter.Use(middleware.RequestTime)
	signalRouter.Use(middleware.Logger(h.logger))
	signalRouter.Use(middleware.Timeout(10 * time.Second))
	signalRouter.Use(middleware.ContentTypeJSON)
	signalRouter.Use(middleware.DeviceMetadata)
	signalRouter.Use(middleware.RequireDeviceAuth(h.jwtValidator, h.logger))
	signalRouter.Post("/signals", h.handleTrigger)
	signalRouter.Get("/signals/{signalID}", h.handleGetSignal)

	r.Mount("/", signalRouter)
}

// triggerRequest is the device trigger payload. The device declares its
// trigger gesture; platform is optional and falls back to the inferred
// agent family.
type triggerRequest struct {
	TriggerMethod models.TriggerMethod `json:"triggerMethod"`
	Platform      models.Platform      `json:"platform,omitempty"`
	OfflineQueued bool                 `json:"offlineQueued,omitempty"`
	TriggeredAt   *time.Time           `json:"triggeredAt,omitempty"`
}

type triggerResponse struct {
	ID     id.SignalID         `json:"id"`
	Status models.SignalStatus `json:"status"`
}

// handleTrigger accepts a silent distress trigger from an enrolled
// device and persists it for routing.
func (h *Handler) handleTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	claims := middleware.GetDeviceClaims(ctx)
	if claims == nil {
		h.logger.ErrorContext(ctx, "device claims missing from context despite auth middleware",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	var req triggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid trigger request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if !req.TriggerMethod.IsValid() {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeValidation, "unknown trigger method %q", req.TriggerMethod))
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = models.Platform(requestcontext.DevicePlatform(ctx))
	}
	if !platform.IsValid() {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeValidation, "unknown platform %q", platform))
		return
	}

	// Offline-queued signals carry the original trigger time from the
	// device; live triggers use the request clock.
	triggeredAt := requestcontext.Now(ctx)
	if req.TriggeredAt != nil {
		triggeredAt = req.TriggeredAt.UTC()
	}

	status := models.StatusPending
	if req.OfflineQueued {
		status = models.StatusQueued
	}

	deviceID := claims.DeviceID
	signal := models.SafetySignal{
		ID:            id.SignalID("sig-" + uuid.NewString()),
		ChildID:       claims.ChildID,
		FamilyID:      claims.FamilyID,
		TriggeredAt:   triggeredAt,
		Status:        status,
		TriggerMethod: req.TriggerMethod,
		Platform:      platform,
		DeviceID:      &deviceID,
		OfflineQueued: req.OfflineQueued,
	}

	if err := h.store.Put(ctx, signal); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist signal",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to accept signal"))
		return
	}

	if h.metrics != nil {
		h.metrics.SignalsReceived.Inc()
	}
	_ = h.auditPublisher.Emit(ctx, audit.Event{
		Category:    audit.CategoryCompliance,
		Timestamp:   triggeredAt,
		Action:      audit.ActionSignalReceived,
		SignalID:    signal.ID.String(),
		SubjectHash: audit.HashSubject(claims.ChildID.String()),
		RequestID:   requestID,
	})
	h.logger.InfoContext(ctx, "signal accepted",
		"signal_id", signal.ID,
		"status", signal.Status,
		"platform", signal.Platform,
		"request_id", requestID,
	)

	httputil.WriteJSON(w, http.StatusCreated, triggerResponse{ID: signal.ID, Status: signal.Status})
}

// handleGetSignal returns the signal's lifecycle state. During an active
// blackout window the signal is reported as not found, so family-visible
// surfaces cannot learn a routing happened.
func (h *Handler) handleGetSignal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	signalID := id.SignalID(chi.URLParam(r, "signalID"))
	if signalID.IsEmpty() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing signal id"))
		return
	}

	blackedOut, err := h.blackouts.IsBlackedOut(ctx, signalID)
	if err != nil {
		h.logger.ErrorContext(ctx, "blackout check failed",
			"signal_id", signalID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load signal"))
		return
	}
	if blackedOut {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "signal %s not found", signalID))
		return
	}

	signal, err := h.store.GetSignal(ctx, signalID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "signal not found"))
		return
	}

	claims := middleware.GetDeviceClaims(ctx)
	if claims == nil || signal.ChildID != claims.ChildID {
		// A device can only observe its own child's signals.
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "signal %s not found", signalID))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, signal)
}
