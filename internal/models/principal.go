package models

// SubjectKind discriminates the two identity roots a session can belong to.
type SubjectKind string

const (
	KindUser  SubjectKind = "user"
	KindAdmin SubjectKind = "admin"
)

// Valid reports whether k is a known subject kind.
func (k SubjectKind) Valid() bool {
	return k == KindUser || k == KindAdmin
}

// Principal is the verified subject of a session token: either a *User or
// an *Admin.
type Principal interface {
	SubjectID() string
	Kind() SubjectKind
	HasAdminRights() bool
	ContactEmail() string
	EmailConfirmed() bool
}

var (
	_ Principal = (*User)(nil)
	_ Principal = (*Admin)(nil)
)
