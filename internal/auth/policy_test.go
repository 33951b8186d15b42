package auth

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestCanModify(t *testing.T) {
	assert.False(t, CanModify(nil, "user-1"))
	assert.False(t, CanModify(nil, ""))
	assert.True(t, CanModify(&Claims{UserID: "user-1"}, "user-1"))
	assert.False(t, CanModify(&Claims{UserID: "user-1"}, "user-2"))

	// exact match, no case folding
	assert.False(t, CanModify(&Claims{UserID: "User-1"}, "user-1"))
}

func TestCanModify_RandomizedIdentities(t *testing.T) {
	gofakeit.Seed(42)

	for i := 0; i < 1000; i++ {
		owner := gofakeit.UUID()
		other := gofakeit.UUID()

		assert.True(t, CanModify(&Claims{UserID: owner}, owner))
		if owner != other {
			assert.False(t, CanModify(&Claims{UserID: other}, owner))
		}
	}
}

func TestMutationPolicy(t *testing.T) {
	assert.False(t, PolicyPublic.RequiresSession())
	assert.True(t, PolicyAuthenticated.RequiresSession())
	assert.True(t, PolicyOwnerOnly.RequiresSession())

	assert.Equal(t, "public", PolicyPublic.String())
	assert.Equal(t, "authenticated", PolicyAuthenticated.String())
	assert.Equal(t, "owner-only", PolicyOwnerOnly.String())
	assert.Equal(t, "unknown", MutationPolicy(42).String())
}
