package tracking

import (
	"net/http"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
)

// Tracking receives browsing events. A nil Tracking disables analytics
// entirely, callers must tolerate that.
type Tracking interface {
	TrackSession(sessionId int, r *http.Request)
	TrackFilter(sessionId int, req *resolve.Request, resultLen int, r *http.Request)
	TrackProductView(sessionId int, productId uint)
}
