// Package service sequences one routing invocation end to end.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"haven/internal/crypto/envelope"
	"haven/internal/platform/audit"
	"haven/internal/platform/metrics"
	"haven/internal/routing/contextbuilder"
	routingmodels "haven/internal/routing/models"
	"haven/internal/routing/ports"
	signalmodels "haven/internal/signal/models"
	"haven/internal/signal/validator"
	id "haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/requestcontext"
)

// BlackoutDuration is the fixed window during which the family must not
// observe that a signal occurred.
const BlackoutDuration = 48 * time.Hour

// Pipeline stage labels for metrics and audit.
const (
	stageValidate     = "validate"
	stageProfileFetch = "profile_fetch"
	stageFamilyFetch  = "family_fetch"
	stageEncrypt      = "encrypt"
	stageQueue        = "queue"
	stageStatusUpdate = "status_update"
	stageBlackout     = "blackout"
)

// Service is the routing orchestrator. One call routes one signal; the
// surrounding runtime owns concurrency across signals. Nothing here is
// shared mutable state, so a Service is safe for concurrent use.
type Service struct {
	signals          ports.SignalStore
	profiles         ports.ProfileStore
	queue            ports.DeliveryQueue
	blackouts        ports.BlackoutScheduler
	partnerPublicKey string
	logger           *slog.Logger
	metrics          *metrics.Metrics
	auditPublisher   audit.Publisher
	tracer           trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

// New creates the orchestrator. All four collaborators and the partner
// public key are required; the rest are optional.
func New(
	signals ports.SignalStore,
	profiles ports.ProfileStore,
	queue ports.DeliveryQueue,
	blackouts ports.BlackoutScheduler,
	partnerPublicKey string,
	opts ...Option,
) (*Service, error) {
	if signals == nil {
		return nil, fmt.Errorf("signal store is required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile store is required")
	}
	if queue == nil {
		return nil, fmt.Errorf("delivery queue is required")
	}
	if blackouts == nil {
		return nil, fmt.Errorf("blackout scheduler is required")
	}
	if partnerPublicKey == "" {
		return nil, fmt.Errorf("partner public key is required")
	}

	svc := &Service{
		signals:          signals,
		profiles:         profiles,
		queue:            queue,
		blackouts:        blackouts,
		partnerPublicKey: partnerPublicKey,
		logger:           slog.Default(),
		auditPublisher:   audit.NopPublisher{},
		tracer:           otel.Tracer("haven/routing"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Route runs the full pipeline for one signal. Every failure before the
// queue step leaves the signal untouched and re-routable; only the fully
// successful path advances status and starts the blackout.
func (s *Service) Route(ctx context.Context, signalID id.SignalID) (routingmodels.RoutingResult, error) {
	ctx, span := s.tracer.Start(ctx, "routing.Route")
	defer span.End()
	start := time.Now()

	signal, err := s.signals.GetSignal(ctx, signalID)
	if err != nil {
		s.failStage(ctx, signalID, stageValidate)
		return routingmodels.RoutingResult{}, dErrors.Wrap(err, dErrors.CodeDependencyFetch, "failed to load signal")
	}

	if err := validator.Validate(signal); err != nil {
		// Skipped, not failed: the gate did its job. No collaborator has
		// been contacted yet.
		if s.metrics != nil {
			s.metrics.RoutingsSkipped.Inc()
		}
		s.emitAudit(ctx, signal, audit.ActionRoutingSkipped, stageValidate, err.Error())
		return routingmodels.RoutingResult{Skipped: true}, err
	}

	profile, err := s.profiles.GetChildProfile(ctx, signal.ChildID)
	if err != nil {
		s.failStage(ctx, signalID, stageProfileFetch)
		return routingmodels.RoutingResult{}, dErrors.Wrap(err, dErrors.CodeDependencyFetch, "failed to fetch child profile")
	}

	family, err := s.profiles.GetFamilyData(ctx, signal.FamilyID)
	if err != nil {
		s.failStage(ctx, signalID, stageFamilyFetch)
		return routingmodels.RoutingResult{}, dErrors.Wrap(err, dErrors.CodeDependencyFetch, "failed to fetch family data")
	}

	rc := contextbuilder.Build(signal, profile, family)

	encryptStart := time.Now()
	sealed, err := envelope.EncryptForPartner(rc, s.partnerPublicKey)
	if err != nil {
		s.failStage(ctx, signalID, stageEncrypt)
		return routingmodels.RoutingResult{}, err
	}
	if s.metrics != nil {
		s.metrics.EncryptDuration.Observe(time.Since(encryptStart).Seconds())
	}

	routingID, err := s.queue.QueueRouting(ctx, signal.ID, sealed)
	if err != nil {
		s.failStage(ctx, signalID, stageQueue)
		return routingmodels.RoutingResult{}, dErrors.Wrap(err, dErrors.CodeDependencyFetch, "failed to queue encrypted delivery")
	}

	// Past this point the envelope is on the wire. Status and blackout
	// failures are reported but the result still names the routing so an
	// operator can reconcile.
	if err := s.signals.UpdateSignalStatus(ctx, signal.ID, signalmodels.StatusSent); err != nil {
		s.failStage(ctx, signalID, stageStatusUpdate)
		return routingmodels.RoutingResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update signal status")
	}

	if err := s.blackouts.StartBlackout(ctx, signal.ID, BlackoutDuration); err != nil {
		s.failStage(ctx, signalID, stageBlackout)
		return routingmodels.RoutingResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to start blackout")
	}

	if s.metrics != nil {
		s.metrics.RoutingsSucceeded.Inc()
		s.metrics.BlackoutsStarted.Inc()
		s.metrics.RouteDuration.Observe(time.Since(start).Seconds())
	}
	s.emitAudit(ctx, signal, audit.ActionSignalRouted, "", "")
	s.emitAudit(ctx, signal, audit.ActionBlackoutStarted, "", "")
	s.logger.InfoContext(ctx, "signal routed",
		"signal_id", signal.ID,
		"routing_id", routingID,
		"request_id", requestcontext.RequestID(ctx),
	)

	return routingmodels.RoutingResult{Success: true, RoutingID: routingID}, nil
}

func (s *Service) failStage(ctx context.Context, signalID id.SignalID, stage string) {
	if s.metrics != nil {
		s.metrics.RoutingFailures.WithLabelValues(stage).Inc()
	}
	s.logger.WarnContext(ctx, "routing stage failed",
		"signal_id", signalID,
		"stage", stage,
		"request_id", requestcontext.RequestID(ctx),
	)
}

// emitAudit is best-effort. Audit must never block or fail a routing.
func (s *Service) emitAudit(ctx context.Context, signal *signalmodels.SafetySignal, action audit.Action, stage, reason string) {
	event := audit.Event{
		Category:    audit.CategoryCompliance,
		Timestamp:   requestcontext.Now(ctx),
		Action:      action,
		SignalID:    signal.ID.String(),
		SubjectHash: audit.HashSubject(signal.ChildID.String()),
		Stage:       stage,
		Reason:      reason,
		RequestID:   requestcontext.RequestID(ctx),
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
