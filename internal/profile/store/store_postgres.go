package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"haven/internal/profile/models"
	id "haven/pkg/domain"
	"haven/pkg/platform/sentinel"
)

// PostgresProfileStore reads the minimal child and family projections
// maintained by the profile service. Schema:
//
//	CREATE TABLE child_profiles (
//	    child_id         TEXT PRIMARY KEY,
//	    birth_date       DATE NOT NULL,
//	    family_structure TEXT NOT NULL
//	);
//
//	CREATE TABLE families (
//	    family_id    TEXT PRIMARY KEY,
//	    jurisdiction TEXT NOT NULL
//	);
type PostgresProfileStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresProfileStore {
	return &PostgresProfileStore{pool: pool}
}

func (s *PostgresProfileStore) GetChildProfile(ctx context.Context, childID id.ChildID) (models.ChildProfileMinimal, error) {
	var profile models.ChildProfileMinimal
	err := s.pool.QueryRow(ctx,
		`SELECT birth_date, family_structure FROM child_profiles WHERE child_id = $1`,
		string(childID),
	).Scan(&profile.BirthDate, &profile.FamilyStructure)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ChildProfileMinimal{}, fmt.Errorf("child profile %s: %w", childID, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.ChildProfileMinimal{}, fmt.Errorf("get child profile: %w", err)
	}
	return profile, nil
}

func (s *PostgresProfileStore) GetFamilyData(ctx context.Context, familyID id.FamilyID) (models.FamilyMinimal, error) {
	var family models.FamilyMinimal
	err := s.pool.QueryRow(ctx,
		`SELECT jurisdiction FROM families WHERE family_id = $1`,
		string(familyID),
	).Scan(&family.Jurisdiction)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.FamilyMinimal{}, fmt.Errorf("family %s: %w", familyID, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.FamilyMinimal{}, fmt.Errorf("get family data: %w", err)
	}
	return family, nil
}
