package middleware

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"haven/pkg/requestcontext"
)

// DeviceMetadata records client metadata and infers the trigger platform
// from the User-Agent when the device did not declare one. Browsing
// content never enters the context here, only the agent family.
func DeviceMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUA := r.UserAgent()
		ctx := requestcontext.WithClientMetadata(r.Context(), clientIP(r), rawUA)
		if platform := inferPlatform(rawUA); platform != "" {
			ctx = requestcontext.WithDevicePlatform(ctx, platform)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func inferPlatform(rawUA string) string {
	if rawUA == "" {
		return ""
	}
	ua := useragent.New(rawUA)
	os := ua.OSInfo()
	switch {
	case strings.EqualFold(os.Name, "Android"):
		return "android"
	case ua.Bot():
		return ""
	default:
		// Extension requests carry a browser UA; the extension itself
		// declares chrome_extension in the trigger body.
		return "web"
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return r.RemoteAddr
}
