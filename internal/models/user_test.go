package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("guest_01"))
	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername("a234567890123456789012345678901"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("guest.one+trip@mail.example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("guest@"))
	assert.Error(t, ValidateEmail("guest.example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("        "))
}

func TestUser_Normalize(t *testing.T) {
	u := User{Username: "  guest ", Email: "  Guest@Example.COM "}
	u.Normalize()
	assert.Equal(t, "guest", u.Username)
	assert.Equal(t, "guest@example.com", u.Email)
	assert.Equal(t, DefaultProfilePicture, u.ProfilePicture)
}
