package core

// Snapshot is a point-in-time view of the session store.
type Snapshot struct {
	// Current is the authenticated identity, or nil when nobody is
	// signed in.
	Current *Identity

	// Resolving is true from process start until the first session check
	// completes, and again during explicit refreshes.
	Resolving bool
}

// SignUpInput contains the data submitted to register a new user.
// Credentials are transient; they are never retained beyond the call
// that uses them.
type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// SignInInput contains the credentials submitted for authentication.
type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResult is the payload returned by the backend on a successful
// sign-in: the authenticated identity plus the bearer token to present
// on subsequent calls.
type SignInResult struct {
	Identity *Identity `json:"user"`
	Token    string    `json:"token"`
}
