// Package store provides ProfileStore implementations.
package store

import (
	"context"
	"fmt"
	"sync"

	"haven/internal/profile/models"
	id "haven/pkg/domain"
	"haven/pkg/platform/sentinel"
)

// InMemoryProfileStore holds child and family projections in memory.
type InMemoryProfileStore struct {
	mu       sync.RWMutex
	children map[id.ChildID]models.ChildProfileMinimal
	families map[id.FamilyID]models.FamilyMinimal
}

func NewInMemory() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		children: make(map[id.ChildID]models.ChildProfileMinimal),
		families: make(map[id.FamilyID]models.FamilyMinimal),
	}
}

func (s *InMemoryProfileStore) PutChildProfile(childID id.ChildID, profile models.ChildProfileMinimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children[childID] = profile
}

func (s *InMemoryProfileStore) PutFamilyData(familyID id.FamilyID, family models.FamilyMinimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families[familyID] = family
}

func (s *InMemoryProfileStore) GetChildProfile(_ context.Context, childID id.ChildID) (models.ChildProfileMinimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.children[childID]
	if !ok {
		return models.ChildProfileMinimal{}, fmt.Errorf("child profile %s: %w", childID, sentinel.ErrNotFound)
	}
	return profile, nil
}

func (s *InMemoryProfileStore) GetFamilyData(_ context.Context, familyID id.FamilyID) (models.FamilyMinimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	family, ok := s.families[familyID]
	if !ok {
		return models.FamilyMinimal{}, fmt.Errorf("family %s: %w", familyID, sentinel.ErrNotFound)
	}
	return family, nil
}
