// Package devicetoken mints and validates the JWTs issued to monitored
// devices at enrollment. A token binds device, child, and family
// identity together so a signal intake request cannot claim another
// child's identity.
package devicetoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"haven/internal/platform/middleware"
	id "haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

// Claims represents the JWT claims for device access tokens.
type Claims struct {
	DeviceID string `json:"device_id"`
	ChildID  string `json:"child_id"`
	FamilyID string `json:"family_id"`
	jwt.RegisteredClaims
}

// JWTService handles device JWT creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewJWTService(signingKey string, issuer string, audience string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

func (s *JWTService) GenerateDeviceToken(
	deviceID id.DeviceID,
	childID id.ChildID,
	familyID id.FamilyID,
	expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		DeviceID: deviceID.String(),
		ChildID:  childID.String(),
		FamilyID: familyID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// ValidateToken checks signature and expiry and returns the device
// identity claims. Satisfies middleware.JWTValidator.
func (s *JWTService) ValidateToken(tokenString string) (*middleware.DeviceClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.ChildID == "" || claims.FamilyID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token missing device identity")
	}

	return &middleware.DeviceClaims{
		DeviceID: id.DeviceID(claims.DeviceID),
		ChildID:  id.ChildID(claims.ChildID),
		FamilyID: id.FamilyID(claims.FamilyID),
	}, nil
}
