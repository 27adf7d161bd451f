package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeValidation, "missing childId")
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeAlreadyRouted))
	})

	t.Run("matches code through wrapping", func(t *testing.T) {
		inner := New(CodeDependencyFetch, "profile lookup failed")
		outer := Wrap(inner, CodeInternal, "routing aborted")
		assert.True(t, HasCode(outer, CodeDependencyFetch))
		assert.True(t, HasCode(outer, CodeInternal))
	})

	t.Run("matches code through fmt wrapping", func(t *testing.T) {
		inner := New(CodeDecryption, "auth tag mismatch")
		outer := fmt.Errorf("partner response: %w", inner)
		assert.True(t, HasCode(outer, CodeDecryption))
	})

	t.Run("uncoded error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("cause stays reachable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeDependencyFetch, "family fetch failed")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Contains(t, err.Error(), "family fetch failed")
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeEncryption, CodeOf(New(CodeEncryption, "bad key")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
