package models

import "time"

// Token binds an issued session token to its subject so it can be revoked.
type Token struct {
	Token       string      `json:"token"`
	SubjectID   string      `json:"subjectId"`
	SubjectKind SubjectKind `json:"subjectKind"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Active reports whether the record is still usable at now.
func (t Token) Active(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
