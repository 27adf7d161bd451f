package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haven/internal/routing/models"
	id "haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

type stubService struct {
	routeFn func(ctx context.Context, signalID id.SignalID) (models.RoutingResult, error)
}

func (s stubService) Route(ctx context.Context, signalID id.SignalID) (models.RoutingResult, error) {
	return s.routeFn(ctx, signalID)
}

func postRoute(t *testing.T, svc Service, signalID string) *httptest.ResponseRecorder {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := New(svc, logger)

	req := httptest.NewRequest(http.MethodPost, "/internal/signals/"+signalID+"/route", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("signalID", signalID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	w := httptest.NewRecorder()
	handler.handleRoute(w, req)
	return w
}

func TestHandleRoute_Success(t *testing.T) {
	routingID := id.NewRoutingID()
	svc := stubService{routeFn: func(_ context.Context, signalID id.SignalID) (models.RoutingResult, error) {
		assert.Equal(t, id.SignalID("sig-001"), signalID)
		return models.RoutingResult{Success: true, RoutingID: routingID}, nil
	}}

	w := postRoute(t, svc, "sig-001")
	require.Equal(t, http.StatusOK, w.Code)

	var resp routeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Skipped)
	assert.Equal(t, routingID.String(), resp.RoutingID)
}

func TestHandleRoute_SkippedIsNotAnError(t *testing.T) {
	svc := stubService{routeFn: func(context.Context, id.SignalID) (models.RoutingResult, error) {
		return models.RoutingResult{Skipped: true},
			dErrors.New(dErrors.CodeAlreadyRouted, "signal already routed")
	}}

	w := postRoute(t, svc, "sig-001")
	require.Equal(t, http.StatusOK, w.Code)

	var resp routeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Skipped)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.RoutingID)
}

func TestHandleRoute_DependencyFailure(t *testing.T) {
	svc := stubService{routeFn: func(context.Context, id.SignalID) (models.RoutingResult, error) {
		return models.RoutingResult{},
			dErrors.New(dErrors.CodeDependencyFetch, "failed to fetch child profile")
	}}

	w := postRoute(t, svc, "sig-001")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleRoute_EncryptionFailureMasked(t *testing.T) {
	svc := stubService{routeFn: func(context.Context, id.SignalID) (models.RoutingResult, error) {
		return models.RoutingResult{},
			dErrors.New(dErrors.CodeEncryption, "rsa wrap failed")
	}}

	w := postRoute(t, svc, "sig-001")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "rsa wrap failed")
}

func TestHandleRoute_MissingSignalID(t *testing.T) {
	svc := stubService{routeFn: func(context.Context, id.SignalID) (models.RoutingResult, error) {
		t.Fatal("service must not be called")
		return models.RoutingResult{}, nil
	}}

	w := postRoute(t, svc, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
