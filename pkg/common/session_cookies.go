package common

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/tracking"
)

func generateSessionId() int {
	return int(time.Now().UnixNano())
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId int) {
	http.SetCookie(w, &http.Cookie{
		Name:     "sid",
		Value:    fmt.Sprintf("%d", sessionId),
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteNoneMode,
		HttpOnly: true,
		MaxAge:   2592000,
		Path:     "/",
	})
}

// HandleSessionCookie returns the visitor's session id, creating the cookie
// and reporting a new session to tracking when none exists yet.
func HandleSessionCookie(trk tracking.Tracking, w http.ResponseWriter, r *http.Request) int {
	sessionId := generateSessionId()
	c, err := r.Cookie("sid")
	if err != nil {
		if trk != nil {
			go trk.TrackSession(sessionId, r)
		}
		setSessionCookie(w, r, sessionId)
	} else {
		sessionId, err = strconv.Atoi(c.Value)
		if err != nil {
			setSessionCookie(w, r, sessionId)
		}
	}
	return sessionId
}
