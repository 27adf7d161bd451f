package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "haven/pkg/domain-errors"
)

// TestParseRoutingID_Invariants validates the parsing invariant:
// routing IDs must be valid, non-empty, non-nil UUIDs.
func TestParseRoutingID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseRoutingID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseRoutingID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseRoutingID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects attack vectors", func(t *testing.T) {
		for _, input := range []string{
			"'; DROP TABLE signals;--",
			"../../../etc/passwd",
			strings.Repeat("a", 1000),
		} {
			_, err := ParseRoutingID(input)
			require.Error(t, err, "input %q must be rejected", input)
		}
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseRoutingID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, RoutingID(valid), id)
	})
}

// TestTypeDistinction documents the compile-time invariant that child and
// family identifiers are not interchangeable. If these types became
// aliases, cross-type assignment would compile and the invariant is broken.
func TestTypeDistinction(t *testing.T) {
	childID := ChildID("child_456")
	familyID := FamilyID("family_789")

	// These would fail to compile if types were interchangeable:
	// var _ ChildID = familyID  // compile error
	// var _ FamilyID = childID  // compile error

	assert.NotEqual(t, string(childID), string(familyID))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, SignalID("").IsEmpty())
	assert.True(t, SignalID("   ").IsEmpty())
	assert.False(t, SignalID("sig_123").IsEmpty())
	assert.True(t, RoutingID(uuid.Nil).IsNil())
	assert.False(t, NewRoutingID().IsNil())
}
