package common

import (
	"net/http"
	"strconv"
	"time"

	"github.com/matst80/slask-filters/pkg/types"
)

const sessionCookieName = "sid"

func generateSessionId() int {
	return int(time.Now().UnixNano())
}

func setSessionCookie(w http.ResponseWriter, sessionId int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    strconv.Itoa(sessionId),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		Path:     "/",
	})
}

// HandleSessionCookie returns the session of the request, starting a new one
// (and tracking it) when the cookie is missing or unreadable.
func HandleSessionCookie(tracking types.Tracking, w http.ResponseWriter, r *http.Request) int {
	c, err := r.Cookie(sessionCookieName)
	if err == nil {
		if sessionId, err := strconv.Atoi(c.Value); err == nil {
			return sessionId
		}
	}
	sessionId := generateSessionId()
	if tracking != nil {
		go tracking.TrackSession(sessionId, types.ClientInfoFromRequest(r))
	}
	setSessionCookie(w, sessionId)
	return sessionId
}
