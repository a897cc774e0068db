package models

import "time"

// Admin is a separate authority root with its own password and secret key.
// It is not a User with a flag set.
type Admin struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	SecretKeyHash string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (a *Admin) SubjectID() string { return a.ID }
func (a *Admin) Kind() SubjectKind { return KindAdmin }
func (a *Admin) HasAdminRights() bool { return true }
func (a *Admin) ContactEmail() string { return a.Email }
func (a *Admin) EmailConfirmed() bool { return true }
