package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"haven/internal/signal/models"
	id "haven/pkg/domain"
	"haven/pkg/platform/sentinel"
)

// PostgresSignalStore persists signals in PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE safety_signals (
//	    id             TEXT PRIMARY KEY,
//	    child_id       TEXT NOT NULL,
//	    family_id      TEXT NOT NULL,
//	    triggered_at   TIMESTAMPTZ NOT NULL,
//	    status         TEXT NOT NULL,
//	    trigger_method TEXT NOT NULL,
//	    platform       TEXT NOT NULL,
//	    device_id      TEXT,
//	    offline_queued BOOLEAN NOT NULL DEFAULT FALSE,
//	    delivered_at   TIMESTAMPTZ
//	);
type PostgresSignalStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresSignalStore {
	return &PostgresSignalStore{db: db}
}

// Put inserts a signal. Duplicate IDs map to sentinel.ErrConflict so the
// trigger path can distinguish replays from real failures.
func (s *PostgresSignalStore) Put(ctx context.Context, signal models.SafetySignal) error {
	query := `
		INSERT INTO safety_signals
			(id, child_id, family_id, triggered_at, status, trigger_method, platform, device_id, offline_queued, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	var deviceID *string
	if signal.DeviceID != nil {
		v := signal.DeviceID.String()
		deviceID = &v
	}
	_, err := s.db.ExecContext(ctx, query,
		signal.ID.String(), signal.ChildID.String(), signal.FamilyID.String(),
		signal.TriggeredAt, string(signal.Status), string(signal.TriggerMethod),
		string(signal.Platform), deviceID, signal.OfflineQueued, signal.DeliveredAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("signal %s: %w", signal.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert signal: %w", err)
	}
	return nil
}

func (s *PostgresSignalStore) GetSignal(ctx context.Context, signalID id.SignalID) (*models.SafetySignal, error) {
	query := `
		SELECT id, child_id, family_id, triggered_at, status, trigger_method, platform, device_id, offline_queued, delivered_at
		FROM safety_signals
		WHERE id = $1
	`
	var (
		signal   models.SafetySignal
		deviceID sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, signalID.String()).Scan(
		&signal.ID, &signal.ChildID, &signal.FamilyID, &signal.TriggeredAt,
		&signal.Status, &signal.TriggerMethod, &signal.Platform,
		&deviceID, &signal.OfflineQueued, &signal.DeliveredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("signal %s: %w", signalID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("load signal: %w", err)
	}
	if deviceID.Valid {
		v := id.DeviceID(deviceID.String)
		signal.DeviceID = &v
	}
	return &signal, nil
}

// UpdateSignalStatus advances the status. The WHERE clause enforces the
// forward-only lifecycle in the database, so concurrent routers cannot
// race a signal backward.
func (s *PostgresSignalStore) UpdateSignalStatus(ctx context.Context, signalID id.SignalID, status models.SignalStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("status %q: %w", status, sentinel.ErrInvalidState)
	}
	query := `
		UPDATE safety_signals
		SET status = $2
		WHERE id = $1
		  AND array_position(ARRAY['queued','pending','sent','delivered','acknowledged'], status)
		      <= array_position(ARRAY['queued','pending','sent','delivered','acknowledged'], $2::text)
	`
	result, err := s.db.ExecContext(ctx, query, signalID.String(), string(status))
	if err != nil {
		return fmt.Errorf("update signal status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update signal status: %w", err)
	}
	if affected == 0 {
		exists, err := s.exists(ctx, signalID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("signal %s: %w", signalID, sentinel.ErrNotFound)
		}
		return fmt.Errorf("signal %s cannot move to %s: %w", signalID, status, sentinel.ErrInvalidState)
	}
	return nil
}

func (s *PostgresSignalStore) exists(ctx context.Context, signalID id.SignalID) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM safety_signals WHERE id = $1`, signalID.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check signal: %w", err)
	}
	return true, nil
}
