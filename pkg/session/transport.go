package session

import (
	"encoding/base64"
	"net/http"
	"time"
)

// tokenBytes is the random length of a session token before encoding.
const tokenBytes = 32

// Transport carries the session token between client and server.
type Transport interface {
	// Token returns the token sent with r, if any.
	Token(r *http.Request) (string, bool)
	// Issue hands token to the client for maxAge.
	Issue(w http.ResponseWriter, token string, maxAge time.Duration)
	// Revoke tells the client to forget its token.
	Revoke(w http.ResponseWriter)
}

// CookieTransport keeps the token in an HTTP-only, SameSite=Lax cookie.
type CookieTransport struct {
	Name   string
	Secure bool
}

// NewCookieTransport returns a CookieTransport for the named cookie.
func NewCookieTransport(name string, secure bool) *CookieTransport {
	return &CookieTransport{Name: name, Secure: secure}
}

// Token returns the cookie value when it has the shape of an issued token.
// Anything else is treated as no token.
func (t *CookieTransport) Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(t.Name)
	if err != nil || !wellFormed(c.Value) {
		return "", false
	}
	return c.Value, true
}

// Issue sets the cookie.
func (t *CookieTransport) Issue(w http.ResponseWriter, token string, maxAge time.Duration) {
	http.SetCookie(w, t.cookie(token, int(maxAge/time.Second)))
}

// Revoke expires the cookie.
func (t *CookieTransport) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, t.cookie("", -1))
}

func (t *CookieTransport) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     t.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func wellFormed(token string) bool {
	if len(token) != base64.RawURLEncoding.EncodedLen(tokenBytes) {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(token)
	return err == nil
}
