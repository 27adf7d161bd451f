package devicetoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

func newTestService() *JWTService {
	return NewJWTService("test-signing-key", "haven", "haven-devices")
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateDeviceToken(
		id.DeviceID("device-001"), id.ChildID("child-001"), id.FamilyID("fam-001"), time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.DeviceID("device-001"), claims.DeviceID)
	assert.Equal(t, id.ChildID("child-001"), claims.ChildID)
	assert.Equal(t, id.FamilyID("fam-001"), claims.FamilyID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateDeviceToken(
		id.DeviceID("device-001"), id.ChildID("child-001"), id.FamilyID("fam-001"), -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateToken_WrongKey(t *testing.T) {
	token, err := newTestService().GenerateDeviceToken(
		id.DeviceID("device-001"), id.ChildID("child-001"), id.FamilyID("fam-001"), time.Hour)
	require.NoError(t, err)

	other := NewJWTService("different-key", "haven", "haven-devices")
	_, err = other.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestService().ValidateToken("not-a-jwt")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateToken_MissingIdentity(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateDeviceToken(id.DeviceID("device-001"), id.ChildID(""), id.FamilyID(""), time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
