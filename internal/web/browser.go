package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	browserCookieName = "browser_id"
	browserCookieTTL  = 365 * 24 * time.Hour
)

// browserID returns the ID that scopes this browser's token slot, issuing a
// new cookie if the request has none or an invalid one.
func browserID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(browserCookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     browserCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(browserCookieTTL.Seconds()),
	})
	return id
}

// isHTMX reports whether the request was issued by htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
