package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionResolver_Resolve(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)
	resolver := NewSessionResolver(codec, "")

	// no cookie
	req := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, resolver.Resolve(req))

	// cookie with an invalid token
	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "junk"})
	assert.Nil(t, resolver.Resolve(req))

	// cookie under a different name is ignored
	token, err := codec.Mint("user-1", "u1@test.dev")
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "other_cookie", Value: token})
	assert.Nil(t, resolver.Resolve(req))

	// valid session
	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	claims := resolver.Resolve(req)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "u1@test.dev", claims.Email)
}

func TestSessionResolver_Cookies(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)
	resolver := NewSessionResolver(codec, "")

	cookie := resolver.SessionCookie("some-token")
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(time.Hour/time.Second), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	expired := resolver.ExpiredSessionCookie()
	assert.Equal(t, SessionCookieName, expired.Name)
	assert.Empty(t, expired.Value)
	assert.Negative(t, expired.MaxAge)
	assert.True(t, expired.HttpOnly)
}
