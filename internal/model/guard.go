package model

import (
	"fmt"
	"strings"
)

// Guard is a pure equality predicate over an instance's matrix coordinate
// and current environment values. Guards are parsed at load time so a
// malformed expression is a structural error, never a runtime one.
type Guard struct {
	Key    string
	Value  string
	Negate bool
}

// ParseGuard parses expressions of the form "key == value" or
// "key != value".
func ParseGuard(expr string) (Guard, error) {
	var op string
	switch {
	case strings.Contains(expr, "!="):
		op = "!="
	case strings.Contains(expr, "=="):
		op = "=="
	default:
		return Guard{}, fmt.Errorf("guard %q: expected == or != comparison", expr)
	}

	left, right, _ := strings.Cut(expr, op)
	key := strings.TrimSpace(left)
	value := strings.TrimSpace(right)

	if key == "" {
		return Guard{}, fmt.Errorf("guard %q: missing key on left side", expr)
	}
	if strings.ContainsAny(value, "=!") {
		return Guard{}, fmt.Errorf("guard %q: multiple comparisons are not supported", expr)
	}

	return Guard{Key: key, Value: value, Negate: op == "!="}, nil
}

// Eval evaluates the guard against a lookup over the instance's coordinate
// and environment store. An absent key resolves to the empty string, so
// "mode != release" holds for instances where mode was never set.
func (g Guard) Eval(lookup func(string) (string, bool)) bool {
	actual, _ := lookup(g.Key)
	if g.Negate {
		return actual != g.Value
	}
	return actual == g.Value
}
