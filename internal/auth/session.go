package auth

import (
	"net/http"
	"time"
)

const SessionCookieName = "atelier_session"

// SessionResolver turns the session cookie of an inbound request into a
// verified identity. A missing cookie and an invalid token are deliberately
// indistinguishable: both resolve to nil.
type SessionResolver struct {
	codec      *Codec
	cookieName string
}

func NewSessionResolver(codec *Codec, cookieName string) *SessionResolver {
	if cookieName == "" {
		cookieName = SessionCookieName
	}
	return &SessionResolver{
		codec:      codec,
		cookieName: cookieName,
	}
}

// Resolve never fails past its boundary: callers always get a definite
// present/absent result.
func (sr *SessionResolver) Resolve(r *http.Request) *Claims {
	cookie, err := r.Cookie(sr.cookieName)
	if err != nil {
		return nil
	}
	claims, err := sr.codec.Verify(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// SessionCookie builds the session cookie holding a freshly minted token.
func (sr *SessionResolver) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     sr.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sr.codec.TTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds the cookie that clears the session on logout.
func (sr *SessionResolver) ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     sr.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
