// Package session resolves the opaque anonymous-visitor token that keys all
// cart operations. The token carries no data and has no server-side state;
// it lives exactly as long as the client keeps presenting it.
package session

import "github.com/google/uuid"

const CookieName = "session_id"

// Resolve returns the identifier for a request. A valid round-tripped token
// is reused; anything absent or unrecognized mints a fresh one, and issued
// tells the caller to persist it on the response. Resolve never fails.
func Resolve(incoming string) (token string, issued bool) {
	if incoming != "" {
		if _, err := uuid.Parse(incoming); err == nil {
			return incoming, false
		}
	}
	return uuid.NewString(), true
}
