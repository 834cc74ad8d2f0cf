package core

// Role is the marketplace role assigned to an identity by the backend.
// The client never changes a role locally; it only replaces the whole
// Identity on re-fetch.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the roles the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

// Identity represents the authenticated principal as known to the client.
//
// This is the "who is logged in" - profile data plus the role that drives
// route authorization.
type Identity struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  Role    `json:"role"`
	Image *string `json:"image,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
