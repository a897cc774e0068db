package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultProfilePicture is assigned to accounts created without an avatar.
const DefaultProfilePicture = "default-avatar.jpg"

// MinPasswordLength applies to every registration path.
const MinPasswordLength = 8

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	emailPattern    = regexp.MustCompile(`^\w+([.+-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
)

// User captures application-facing fields for an end customer.
type User struct {
	ID             string    `json:"_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	IsAdmin        bool      `json:"isAdmin"`
	EmailVerified  bool      `json:"emailVerified"`
	ProfilePicture string    `json:"profilePicture"`
	Bookings       []string  `json:"bookings"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) SubjectID() string { return u.ID }
func (u *User) Kind() SubjectKind { return KindUser }
func (u *User) HasAdminRights() bool { return u.IsAdmin }
func (u *User) ContactEmail() string { return u.Email }
func (u *User) EmailConfirmed() bool { return u.EmailVerified }

// Normalize trims identity fields and lowercases the email.
func (u *User) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = NormalizeEmail(u.Email)
	if u.ProfilePicture == "" {
		u.ProfilePicture = DefaultProfilePicture
	}
}

// Validate checks the identity fields. Password rules are checked separately
// because only the hash is kept on the entity.
func (u User) Validate() error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	return ValidateEmail(u.Email)
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateUsername(username string) error {
	switch {
	case username == "":
		return &FieldError{Field: "username", Message: "Username is required"}
	case utf8.RuneCountInString(username) < 3:
		return &FieldError{Field: "username", Message: "Username must be at least 3 characters"}
	case utf8.RuneCountInString(username) > 30:
		return &FieldError{Field: "username", Message: "Username cannot exceed 30 characters"}
	case !usernamePattern.MatchString(username):
		return &FieldError{Field: "username", Message: "Username can only contain letters, numbers and underscores"}
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &FieldError{Field: "email", Message: "Please include a valid email"}
	}
	return nil
}

func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return &FieldError{Field: "password", Message: "Password is required"}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength || !utf8.ValidString(password) {
		return &FieldError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	return nil
}
