package validator

import "nodedex/internal/domain"

// IsVisible reports whether a property participates in validation under the
// given configuration. Hide rules win over show rules: if any hide condition
// matches, the property is invisible regardless of show. Show rules are
// conjunctive across keys; within one key the listed conditions are
// alternatives. A key absent from the configuration never satisfies an
// equality or membership condition, so properties gated on an unset selector
// stay hidden.
func IsVisible(p domain.NodeProperty, cfg *domain.Config) bool {
	d := p.Display
	if d == nil {
		return true
	}
	for key, conds := range d.Hide {
		current, present := cfg.Get(key)
		for _, c := range conds {
			if c.Matches(current, present) {
				return false
			}
		}
	}
	for key, conds := range d.Show {
		current, present := cfg.Get(key)
		if !anyMatches(conds, current, present) {
			return false
		}
	}
	return true
}

// VisibleProperties filters the property slice down to the entries visible
// under cfg, preserving order.
func VisibleProperties(props []domain.NodeProperty, cfg *domain.Config) []domain.NodeProperty {
	out := make([]domain.NodeProperty, 0, len(props))
	for _, p := range props {
		if IsVisible(p, cfg) {
			out = append(out, p)
		}
	}
	return out
}

func anyMatches(conds domain.ConditionList, current domain.Value, present bool) bool {
	for _, c := range conds {
		if c.Matches(current, present) {
			return true
		}
	}
	return false
}
