package domain

// UserRole is the coarse role a principal acts under.
type UserRole string

const (
	RoleEmployee UserRole = "EMPLOYEE"
	RoleManager  UserRole = "MANAGER"
	RoleAdmin    UserRole = "ADMIN"
)

// CanApprove reports whether the role may resolve absence or manual clock
// requests and manage other users' records.
func (r UserRole) CanApprove() bool {
	return r == RoleManager || r == RoleAdmin
}

// User is an employee account. Authentication lives at the service boundary;
// the engine only consumes the resolved identity and role.
type User struct {
	UserID         string   `json:"userID"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Role           UserRole `json:"role"`
	Region         *string  `json:"region,omitempty"`   // scopes REGIONAL holidays
	Locality       *string  `json:"locality,omitempty"` // scopes LOCAL holidays
	HashedPassword string   `json:"-"`
	AuditFields
}

// Principal is the acting identity resolved by the authentication middleware
// and threaded into every engine operation.
type Principal struct {
	UserID string
	Role   UserRole
}

// ActsOnSelf reports whether the principal targets their own records.
func (p Principal) ActsOnSelf(targetUserID string) bool {
	return p.UserID == targetUserID
}
