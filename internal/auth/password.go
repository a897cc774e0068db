package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and checks secrets (passwords and admin secret keys) with bcrypt.
type Hasher struct {
	cost  int
	decoy string
}

const decoySecret = "atithi-inn-decoy-secret"

// NewHasher clamps cost into bcrypt's accepted range and prepares the decoy
// hash used by MatchesNone at that cost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	decoy, _ := bcrypt.GenerateFromPassword([]byte(decoySecret), cost)
	return Hasher{cost: cost, decoy: string(decoy)}
}

func (h Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hashed), nil
}

// Matches reports whether plain hashes to hashed. Any bcrypt failure other
// than a mismatch is returned.
func (h Hasher) Matches(hashed, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare secret: %w", err)
	}
}

// MatchesNone runs one full comparison against the decoy hash and discards
// the result, so a login for an unknown account costs the same as a wrong
// password.
func (h Hasher) MatchesNone(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(h.decoy), []byte(plain))
}
