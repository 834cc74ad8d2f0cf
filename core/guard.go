package core

// Decision is the outcome of evaluating a guard against a snapshot.
type Decision int

const (
	// DecisionLoading means the session is still resolving; show a
	// neutral loading state and do not redirect yet.
	DecisionLoading Decision = iota

	// DecisionRender means the wrapped subtree may render.
	DecisionRender

	// DecisionRedirect means the viewer must be sent to RedirectTo and
	// nothing renders.
	DecisionRedirect
)

// GuardResult pairs a decision with its redirect target, which is set
// only for DecisionRedirect.
type GuardResult struct {
	Decision   Decision
	RedirectTo string
}

// Guard gates a protected view subtree based on session state and an
// allow-list of roles. An empty allow-list admits any authenticated
// identity.
//
// The guard is a three-state machine: resolving, then exactly one of
// unauthenticated (redirect to login), wrong role (redirect to the
// role's own landing path), or authorized (render).
type Guard struct {
	policy  RedirectPolicy
	allowed []Role
}

// NewGuard builds a guard for the given allow-list.
func NewGuard(policy RedirectPolicy, allowed ...Role) *Guard {
	return &Guard{policy: policy, allowed: allowed}
}

// Evaluate decides what to do with the current snapshot. It is pure:
// re-evaluated on every store change, no state carried between calls.
func (g *Guard) Evaluate(snap Snapshot) GuardResult {
	if snap.Resolving {
		return GuardResult{Decision: DecisionLoading}
	}

	if snap.Current == nil {
		return GuardResult{Decision: DecisionRedirect, RedirectTo: g.policy.LoginPath}
	}

	if len(g.allowed) > 0 && !g.roleAllowed(snap.Current.Role) {
		return GuardResult{
			Decision:   DecisionRedirect,
			RedirectTo: g.policy.LandingPath(snap.Current.Role),
		}
	}

	return GuardResult{Decision: DecisionRender}
}

func (g *Guard) roleAllowed(role Role) bool {
	for _, r := range g.allowed {
		if r == role {
			return true
		}
	}
	return false
}
