//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"haven/internal/signal/models"
	"haven/internal/signal/store"
	id "haven/pkg/domain"
	"haven/pkg/platform/sentinel"
	"haven/pkg/testutil/containers"
)

const signalSchema = `
CREATE TABLE IF NOT EXISTS safety_signals (
    id             TEXT PRIMARY KEY,
    child_id       TEXT NOT NULL,
    family_id      TEXT NOT NULL,
    triggered_at   TIMESTAMPTZ NOT NULL,
    status         TEXT NOT NULL,
    trigger_method TEXT NOT NULL,
    platform       TEXT NOT NULL,
    device_id      TEXT,
    offline_queued BOOLEAN NOT NULL DEFAULT FALSE,
    delivered_at   TIMESTAMPTZ
)`

type PostgresSignalStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresSignalStore
}

func TestPostgresSignalStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSignalStoreSuite))
}

func (s *PostgresSignalStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	_, err := s.postgres.DB.Exec(signalSchema)
	s.Require().NoError(err)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresSignalStoreSuite) SetupTest() {
	_, err := s.postgres.DB.Exec(`TRUNCATE safety_signals`)
	s.Require().NoError(err)
}

func (s *PostgresSignalStoreSuite) seed(signalID string, status models.SignalStatus) models.SafetySignal {
	deviceID := id.DeviceID("device-001")
	signal := models.SafetySignal{
		ID:            id.SignalID(signalID),
		ChildID:       id.ChildID("child-001"),
		FamilyID:      id.FamilyID("fam-001"),
		TriggeredAt:   time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Status:        status,
		TriggerMethod: models.TriggerKeyboardShortcut,
		Platform:      models.PlatformChromeExtension,
		DeviceID:      &deviceID,
		OfflineQueued: true,
	}
	s.Require().NoError(s.store.Put(context.Background(), signal))
	return signal
}

func (s *PostgresSignalStoreSuite) TestPutAndGet() {
	want := s.seed("sig-001", models.StatusQueued)

	got, err := s.store.GetSignal(context.Background(), want.ID)
	s.Require().NoError(err)
	s.Equal(want.ID, got.ID)
	s.Equal(want.ChildID, got.ChildID)
	s.Equal(want.FamilyID, got.FamilyID)
	s.Equal(want.Status, got.Status)
	s.Equal(want.TriggerMethod, got.TriggerMethod)
	s.Equal(want.Platform, got.Platform)
	s.Require().NotNil(got.DeviceID)
	s.Equal(*want.DeviceID, *got.DeviceID)
	s.True(got.OfflineQueued)
	s.Nil(got.DeliveredAt)
	s.True(want.TriggeredAt.Equal(got.TriggeredAt))
}

func (s *PostgresSignalStoreSuite) TestPut_DuplicateConflicts() {
	signal := s.seed("sig-001", models.StatusQueued)
	s.ErrorIs(s.store.Put(context.Background(), signal), sentinel.ErrConflict)
}

func (s *PostgresSignalStoreSuite) TestGetSignal_NotFound() {
	_, err := s.store.GetSignal(context.Background(), id.SignalID("missing"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresSignalStoreSuite) TestUpdateSignalStatus_Forward() {
	signal := s.seed("sig-001", models.StatusPending)
	ctx := context.Background()

	s.Require().NoError(s.store.UpdateSignalStatus(ctx, signal.ID, models.StatusSent))

	got, err := s.store.GetSignal(ctx, signal.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusSent, got.Status)
}

func (s *PostgresSignalStoreSuite) TestUpdateSignalStatus_NeverRegresses() {
	signal := s.seed("sig-001", models.StatusDelivered)
	ctx := context.Background()

	err := s.store.UpdateSignalStatus(ctx, signal.ID, models.StatusPending)
	s.ErrorIs(err, sentinel.ErrInvalidState)

	got, err := s.store.GetSignal(ctx, signal.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusDelivered, got.Status)
}

func (s *PostgresSignalStoreSuite) TestUpdateSignalStatus_NotFound() {
	err := s.store.UpdateSignalStatus(context.Background(), id.SignalID("missing"), models.StatusSent)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
