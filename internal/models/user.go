package models

// User represents a row of the users table.
type User struct {
	UserID         string  `json:"userID"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Region         *string `json:"region"`
	Locality       *string `json:"locality"`
	HashedPassword string  `json:"-"`
	AuditFields
}
