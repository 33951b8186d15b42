package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_MintAndVerify(t *testing.T) {
	codec := NewCodec([]byte("secret-1"), time.Hour)

	token, err := codec.Mint("user-1", "u1@test.dev")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "u1@test.dev", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestCodec_VerifyFailuresCollapse(t *testing.T) {
	codec := NewCodec([]byte("secret-1"), time.Hour)
	otherCodec := NewCodec([]byte("secret-2"), time.Hour)

	// wrong secret
	token, err := otherCodec.Mint("user-1", "u1@test.dev")
	require.NoError(t, err)
	claims, err := codec.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// garbage
	claims, err = codec.Verify("definitely.not.a.jwt")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// expired
	expiredCodec := NewCodec([]byte("secret-1"), time.Nanosecond)
	token, err = expiredCodec.Mint("user-1", "u1@test.dev")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	claims, err = codec.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_RejectsUnsignedAlg(t *testing.T) {
	codec := NewCodec([]byte("secret-1"), time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := codec.Verify(raw)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_DefaultTTL(t *testing.T) {
	codec := NewCodec([]byte("s"), 0)
	assert.Equal(t, DefaultTTL, codec.TTL())
}
