package core

// RedirectPolicy is the pure role-to-landing-path mapping used everywhere
// a role needs to be turned into a path. Keeping it in one place avoids
// the duplicated role ladders that otherwise creep into redirect logic.
type RedirectPolicy struct {
	StudentPath string
	TutorPath   string
	AdminPath   string
	HomePath    string
	LoginPath   string
}

// DefaultRedirectPolicy returns the marketplace defaults.
func DefaultRedirectPolicy() RedirectPolicy {
	return RedirectPolicy{
		StudentPath: "/dashboard",
		TutorPath:   "/tutor",
		AdminPath:   "/admin",
		HomePath:    "/",
		LoginPath:   "/login",
	}
}

// LandingPath maps a role to its default landing path. Unknown or empty
// roles land on the public home page.
func (p RedirectPolicy) LandingPath(role Role) string {
	switch role {
	case RoleStudent:
		return p.StudentPath
	case RoleTutor:
		return p.TutorPath
	case RoleAdmin:
		return p.AdminPath
	default:
		return p.HomePath
	}
}
