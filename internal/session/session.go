package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
)

const CookieName = "booking_session"

// FromRequest returns the session token carried by the request cookie, if any.
func FromRequest(c *ginext.Context) (string, bool) {
	v, err := c.Cookie(CookieName)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// Ensure returns the caller's session token, minting and setting a new one
// when the request carries no cookie. The token is an opaque ownership
// capability, not an authentication credential.
func Ensure(c *ginext.Context, ttl time.Duration) string {
	if v, ok := FromRequest(c); ok {
		return v
	}
	token := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(ttl.Seconds()), "/", "", false, true)
	return token
}
