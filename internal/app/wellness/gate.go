package wellness

import "github.com/calma-app/calma/internal/domain"

// EntitlementGate decides premium access. Once granted it never reverts.
type EntitlementGate struct {
	granted bool
	plan    domain.Plan
}

// IsLocked reports whether ex is unavailable to the user.
func (g *EntitlementGate) IsLocked(ex domain.Exercise) bool {
	return ex.Premium && !g.granted
}

// Grant unlocks premium content. It reports true only for the first grant;
// later grants keep the original plan.
func (g *EntitlementGate) Grant(plan domain.Plan) bool {
	if g.granted {
		return false
	}
	g.granted = true
	g.plan = plan
	return true
}

// IsPremium reports whether premium access was granted.
func (g *EntitlementGate) IsPremium() bool { return g.granted }

// Plan returns the plan that unlocked premium, or "" when locked.
func (g *EntitlementGate) Plan() domain.Plan { return g.plan }
