package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hashed, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hashed)

	ok, err := h.Matches(hashed, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Matches(hashed, "battery staple")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Matches("not-a-hash", "x")
	assert.Error(t, err)
}

func TestNewHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(99).cost)
	assert.Equal(t, 12, NewHasher(12).cost)
}

func TestHasher_MatchesNoneUsesConfiguredCost(t *testing.T) {
	h := NewHasher(bcrypt.MinCost + 1)

	cost, err := bcrypt.Cost([]byte(h.decoy))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)

	assert.NotPanics(t, func() { h.MatchesNone("password123") })
	assert.NotPanics(t, func() { Hasher{}.MatchesNone("password123") })
}
