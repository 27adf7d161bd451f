package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"haven/internal/blackout"
	"haven/internal/platform/audit"
	"haven/internal/platform/middleware"
	"haven/internal/signal/models"
	"haven/internal/signal/store"
	id "haven/pkg/domain"
	"haven/pkg/requestcontext"
)

type SignalHandlerSuite struct {
	suite.Suite
	store     *store.InMemorySignalStore
	blackouts *blackout.InMemoryScheduler
	audits    *audit.InMemoryStore
	handler   *Handler
	now       time.Time
}

func TestSignalHandlerSuite(t *testing.T) {
	suite.Run(t, new(SignalHandlerSuite))
}

func (s *SignalHandlerSuite) SetupTest() {
	s.now = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s.store = store.NewInMemory()
	s.blackouts = blackout.NewInMemory().WithClock(func() time.Time { return s.now })
	s.audits = audit.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = New(s.store, s.blackouts, nil, logger, nil, syncPublisher{s.audits})
}

// syncPublisher appends directly so tests observe events without a worker.
type syncPublisher struct {
	store audit.Store
}

func (p syncPublisher) Emit(ctx context.Context, event audit.Event) error {
	return p.store.Append(ctx, event)
}

func (s *SignalHandlerSuite) deviceContext(ctx context.Context) context.Context {
	ctx = middleware.WithDeviceClaims(ctx, &middleware.DeviceClaims{
		DeviceID: id.DeviceID("device-001"),
		ChildID:  id.ChildID("child-001"),
		FamilyID: id.FamilyID("fam-001"),
	})
	return requestcontext.WithTime(ctx, s.now)
}

func (s *SignalHandlerSuite) postTrigger(body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/signals", bytes.NewReader(payload))
	req = req.WithContext(s.deviceContext(req.Context()))

	w := httptest.NewRecorder()
	s.handler.handleTrigger(w, req)
	return w
}

// ============================================================
// Trigger intake
// ============================================================

func (s *SignalHandlerSuite) TestHandleTrigger() {
	w := s.postTrigger(triggerRequest{
		TriggerMethod: models.TriggerLogoTap,
		Platform:      models.PlatformAndroid,
	})

	s.Require().Equal(http.StatusCreated, w.Code)
	var resp triggerResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(models.StatusPending, resp.Status)
	s.False(resp.ID.IsEmpty())

	stored, err := s.store.GetSignal(context.Background(), resp.ID)
	s.Require().NoError(err)
	s.Equal(id.ChildID("child-001"), stored.ChildID)
	s.Equal(id.FamilyID("fam-001"), stored.FamilyID)
	s.Require().NotNil(stored.DeviceID)
	s.Equal(id.DeviceID("device-001"), *stored.DeviceID)
	s.Equal(s.now, stored.TriggeredAt)
}

func (s *SignalHandlerSuite) TestHandleTrigger_OfflineQueued() {
	queuedAt := s.now.Add(-2 * time.Hour)
	w := s.postTrigger(triggerRequest{
		TriggerMethod: models.TriggerSwipePattern,
		Platform:      models.PlatformAndroid,
		OfflineQueued: true,
		TriggeredAt:   &queuedAt,
	})

	s.Require().Equal(http.StatusCreated, w.Code)
	var resp triggerResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(models.StatusQueued, resp.Status)

	stored, err := s.store.GetSignal(context.Background(), resp.ID)
	s.Require().NoError(err)
	s.True(stored.OfflineQueued)
	s.Equal(queuedAt, stored.TriggeredAt)
}

func (s *SignalHandlerSuite) TestHandleTrigger_UnknownMethod() {
	w := s.postTrigger(map[string]any{"triggerMethod": "shout", "platform": "web"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *SignalHandlerSuite) TestHandleTrigger_UnknownPlatform() {
	w := s.postTrigger(map[string]any{"triggerMethod": "logo_tap", "platform": "ios"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *SignalHandlerSuite) TestHandleTrigger_AuditsHashedSubject() {
	w := s.postTrigger(triggerRequest{
		TriggerMethod: models.TriggerLogoTap,
		Platform:      models.PlatformWeb,
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	events := s.audits.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionSignalReceived, events[0].Action)
	s.Equal(audit.HashSubject("child-001"), events[0].SubjectHash)
	s.NotContains(events[0].SubjectHash, "child-001")
}

// ============================================================
// Status reads and blackout gating
// ============================================================

func (s *SignalHandlerSuite) getSignal(signalID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/signals/"+signalID, nil)
	req = req.WithContext(s.deviceContext(req.Context()))

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("signalID", signalID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	w := httptest.NewRecorder()
	s.handler.handleGetSignal(w, req)
	return w
}

func (s *SignalHandlerSuite) seedSignal() models.SafetySignal {
	signal := models.SafetySignal{
		ID:            id.SignalID("sig-visible"),
		ChildID:       id.ChildID("child-001"),
		FamilyID:      id.FamilyID("fam-001"),
		Status:        models.StatusPending,
		TriggerMethod: models.TriggerLogoTap,
		Platform:      models.PlatformWeb,
		TriggeredAt:   s.now,
	}
	s.Require().NoError(s.store.Put(context.Background(), signal))
	return signal
}

func (s *SignalHandlerSuite) TestHandleGetSignal() {
	signal := s.seedSignal()

	w := s.getSignal(signal.ID.String())
	s.Require().Equal(http.StatusOK, w.Code)

	var got models.SafetySignal
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(signal.ID, got.ID)
	s.Equal(models.StatusPending, got.Status)
}

func (s *SignalHandlerSuite) TestHandleGetSignal_BlackedOutReadsAsMissing() {
	signal := s.seedSignal()
	s.Require().NoError(s.blackouts.StartBlackout(context.Background(), signal.ID, 48*time.Hour))

	w := s.getSignal(signal.ID.String())
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *SignalHandlerSuite) TestHandleGetSignal_BlackoutExpires() {
	signal := s.seedSignal()
	s.Require().NoError(s.blackouts.StartBlackout(context.Background(), signal.ID, 48*time.Hour))

	s.now = s.now.Add(48*time.Hour + time.Minute)

	w := s.getSignal(signal.ID.String())
	s.Equal(http.StatusOK, w.Code)
}

func (s *SignalHandlerSuite) TestHandleGetSignal_OtherChildHidden() {
	other := models.SafetySignal{
		ID:            id.SignalID("sig-other"),
		ChildID:       id.ChildID("child-999"),
		FamilyID:      id.FamilyID("fam-999"),
		Status:        models.StatusPending,
		TriggerMethod: models.TriggerLogoTap,
		Platform:      models.PlatformWeb,
		TriggeredAt:   s.now,
	}
	s.Require().NoError(s.store.Put(context.Background(), other))

	w := s.getSignal("sig-other")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *SignalHandlerSuite) TestHandleGetSignal_NotFound() {
	w := s.getSignal("missing")
	s.Equal(http.StatusNotFound, w.Code)
}
