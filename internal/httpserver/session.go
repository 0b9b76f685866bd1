package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mcardoso/storefront/internal/session"
)

// sessionID resolves the anonymous visitor identifier for a request and, when
// a fresh one is minted, persists it on the response so the client round-trips
// it. Echo handlers are the only place that touches the cookie; everything
// below takes the resolved identifier as an explicit argument.
func sessionID(c echo.Context) string {
	incoming := ""
	if ck, err := c.Cookie(session.CookieName); err == nil {
		incoming = ck.Value
	}

	token, issued := session.Resolve(incoming)
	if issued {
		c.SetCookie(&http.Cookie{
			Name:     session.CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})
	}
	return token
}
