package trigger

import "github.com/sourceplane/flowci/internal/model"

// BranchPattern decides whether a branch name matches. The workflow format
// only carries exact names today; the predicate form leaves room for glob or
// prefix patterns without touching the filter.
type BranchPattern interface {
	Matches(branch string) bool
}

// ExactPattern matches a branch by exact string equality
type ExactPattern string

// Matches reports whether the branch equals the pattern
func (p ExactPattern) Matches(branch string) bool {
	return string(p) == branch
}

// Filter decides whether an incoming event should start a run
type Filter struct {
	patterns map[string][]BranchPattern
}

// NewFilter builds a filter from a workflow's trigger rules
func NewFilter(on map[string]model.TriggerRule) *Filter {
	patterns := make(map[string][]BranchPattern, len(on))
	for kind, rule := range on {
		ps := make([]BranchPattern, 0, len(rule.Branches))
		for _, b := range rule.Branches {
			ps = append(ps, ExactPattern(b))
		}
		patterns[kind] = ps
	}
	return &Filter{patterns: patterns}
}

// Accepts reports whether a branch event of the given kind should start a
// run. It fails closed: an event kind with no configured rule is rejected,
// never silently accepted.
func (f *Filter) Accepts(eventKind, branch string) bool {
	ps, ok := f.patterns[eventKind]
	if !ok {
		return false
	}
	for _, p := range ps {
		if p.Matches(branch) {
			return true
		}
	}
	return false
}
