package middleware

import (
	"net/http"
	"time"

	"github.com/joseph082/aws-amplify-docs/internal/overview"
	"github.com/joseph082/aws-amplify-docs/internal/platform"
)

// PlatformCookie remembers the last platform a reader chose.
const PlatformCookie = "platform"

const platformCookieMaxAge = 365 * 24 * time.Hour

// Platform resolves the reader's platform from the query parameter, then
// the cookie, then fallback. Unknown values are ignored. A valid query value
// that differs from the cookie refreshes the cookie.
func Platform(fallback platform.Platform) func(http.Handler) http.Handler {
	if !fallback.Valid() {
		fallback = platform.Default
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := fallback
			var fromCookie platform.Platform
			if c, err := r.Cookie(PlatformCookie); err == nil {
				if p, err := platform.Parse(c.Value); err == nil {
					fromCookie = p
					current = p
				}
			}
			if raw := r.URL.Query().Get(overview.QueryParam); raw != "" {
				if p, err := platform.Parse(raw); err == nil {
					current = p
					if p != fromCookie {
						http.SetCookie(w, &http.Cookie{
							Name:     PlatformCookie,
							Value:    string(p),
							Path:     "/",
							MaxAge:   int(platformCookieMaxAge.Seconds()),
							HttpOnly: true,
							SameSite: http.SameSiteLaxMode,
						})
					}
				}
			}
			next.ServeHTTP(w, r.WithContext(WithPlatform(r.Context(), current)))
		})
	}
}

// CurrentPlatform returns the request's platform, or fallback when the
// middleware did not run.
func CurrentPlatform(r *http.Request, fallback platform.Platform) platform.Platform {
	if p, ok := PlatformFromContext(r.Context()); ok {
		return p
	}
	return fallback
}

// VaryPlatform marks responses as depending on the platform cookie.
func VaryPlatform(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// append to existing Vary if any
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}
