package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "haven/pkg/domain-errors"
)

func TestGenerateHashVerify(t *testing.T) {
	secret, err := Generate()
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	hash, err := Hash(secret)
	require.NoError(t, err)
	assert.NotEqual(t, secret, hash)

	assert.NoError(t, Verify(secret, hash))
}

func TestGenerate_Unique(t *testing.T) {
	first, err := Generate()
	require.NoError(t, err)
	second, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHash_EmptySecret(t *testing.T) {
	_, err := Hash("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestVerify_WrongSecret(t *testing.T) {
	hash, err := Hash("correct-secret")
	require.NoError(t, err)

	err = Verify("wrong-secret", hash)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
