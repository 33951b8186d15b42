package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * 7 * time.Hour

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed token, expired token. Callers must not surface the sub-reason
// to the client.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded content of a session token. It asserts the user's
// identity for the duration of one request and is never persisted.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Codec mints and verifies signed session tokens. The signing secret is
// process-wide and read-only after initialization.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		secret: secret,
		ttl:    ttl,
	}
}

func (c *Codec) Mint(userID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(c.secret)
}

func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}
