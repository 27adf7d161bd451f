// Package models defines the minimal read-only inputs fetched for routing.
//
// These are deliberately narrow projections of what the surrounding
// account system stores. The routing pipeline never sees more than this.
package models

import "time"

// FamilyStructure describes the household, used by the partner to pick
// an appropriate crisis-response protocol.
type FamilyStructure string

const (
	StructureSingleParent  FamilyStructure = "single_parent"
	StructureTwoParent     FamilyStructure = "two_parent"
	StructureSharedCustody FamilyStructure = "shared_custody"
	StructureCaregiver     FamilyStructure = "caregiver"
)

func (f FamilyStructure) IsValid() bool {
	switch f {
	case StructureSingleParent, StructureTwoParent, StructureSharedCustody, StructureCaregiver:
		return true
	}
	return false
}

// ChildProfileMinimal is the privacy-minimal child projection.
type ChildProfileMinimal struct {
	BirthDate       time.Time       `json:"birthDate"`
	FamilyStructure FamilyStructure `json:"familyStructure"`
}

// FamilyMinimal is the privacy-minimal family projection.
type FamilyMinimal struct {
	Jurisdiction string `json:"jurisdiction"`
}
