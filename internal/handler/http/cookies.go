package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-user-service/models"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

func newTokenCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// setTokenCookies writes both tokens as cookies living as long as the tokens.
func (h *Handler) setTokenCookies(w http.ResponseWriter, pair models.TokenPair) {
	http.SetCookie(w, newTokenCookie(accessTokenCookie, pair.AccessToken, h.auth.AccessTokenTTL))
	http.SetCookie(w, newTokenCookie(refreshTokenCookie, pair.RefreshToken, h.auth.RefreshTokenTTL))
}

// clearTokenCookies expires both token cookies on the client.
func (h *Handler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		c := newTokenCookie(name, "", 0)
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

// cookieValue returns the value of the named cookie or "".
func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
