package domain

// User represents an application user. PasswordHash is never serialized.
type User struct {
	UserID       string `json:"userID"` // UUID
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"isAdmin"`
	AuditFields
}
