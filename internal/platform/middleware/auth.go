package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "haven/pkg/domain"
)

// JWTValidator defines the interface for validating device JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*DeviceClaims, error)
}

// DeviceClaims represents the claims we expect from the device token.
// Devices are enrolled per child, so the token binds device, child, and
// family identity together.
type DeviceClaims struct {
	DeviceID id.DeviceID
	ChildID  id.ChildID
	FamilyID id.FamilyID
}

// Context keys for storing authenticated device information.
type contextKeyDeviceClaims struct{}

// ContextKeyDeviceClaims is exported for use in handler tests.
var ContextKeyDeviceClaims = contextKeyDeviceClaims{}

// GetDeviceClaims retrieves the authenticated device claims from the context.
func GetDeviceClaims(ctx context.Context) *DeviceClaims {
	claims, ok := ctx.Value(ContextKeyDeviceClaims).(*DeviceClaims)
	if !ok {
		return nil
	}
	return claims
}

// WithDeviceClaims injects device claims into a context.
// Useful for handler tests that don't run the full middleware chain.
func WithDeviceClaims(ctx context.Context, claims *DeviceClaims) context.Context {
	return context.WithValue(ctx, ContextKeyDeviceClaims, claims)
}

// RequireDeviceAuth validates the Bearer token minted at device enrollment
// and stores its claims in the request context.
func RequireDeviceAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if token, ok := strings.CutPrefix(authHeader, bearerPrefix); ok {
				claims, err := validator.ValidateToken(token)
				if err != nil {
					ctx := r.Context()
					logger.WarnContext(ctx, "unauthorized access - invalid device token",
						"error", err,
						"request_id", GetRequestID(ctx),
					)
					writeUnauthorized(w, "Invalid or expired token")
					return
				}

				ctx := WithDeviceClaims(r.Context(), claims)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// No Authorization header or invalid format
			ctx := r.Context()
			logger.WarnContext(ctx, "unauthorized access - missing device token",
				"request_id", GetRequestID(ctx),
			)
			writeUnauthorized(w, "Missing or invalid Authorization header")
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
