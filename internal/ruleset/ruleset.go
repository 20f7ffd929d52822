// Package ruleset implements the ordered sequence of Rules with
// first-match disjunctive coverage, aggregate MDL accounting and
// context-aware single-rule pruning used by the optimization pass.
package ruleset

import (
	"strings"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/rule"
)

// Handle is a stable, dense identifier for a rule within a Ruleset. It
// remains valid across in-place replacement and is only invalidated when
// the owning Ruleset itself is discarded.
type Handle int

// Ruleset is a sequence of Rules. It covers an instance iff any
// contained rule covers it (first-match short circuit). Rulesets
// exclusively own their Rules.
type Ruleset struct {
	rules []*rule.Rule
}

// New returns an empty ruleset.
func New() *Ruleset { return &Ruleset{} }

// AddRule appends r to the set and returns its handle.
func (s *Ruleset) AddRule(r *rule.Rule) Handle {
	s.rules = append(s.rules, r)
	return Handle(len(s.rules) - 1)
}

// GetRule returns the rule at handle.
func (s *Ruleset) GetRule(h Handle) *rule.Rule { return s.rules[h] }

// ReplaceRule overwrites the rule at handle with a clone of r, so the
// handle's identity survives the swap.
func (s *Ruleset) ReplaceRule(h Handle, r *rule.Rule) { s.rules[h] = r.Clone() }

// Handles returns every handle currently in the set, in rule order.
func (s *Ruleset) Handles() []Handle {
	out := make([]Handle, len(s.rules))
	for i := range s.rules {
		out[i] = Handle(i)
	}
	return out
}

// Size returns the number of rules in the set.
func (s *Ruleset) Size() int { return len(s.rules) }

// CoverAny reports whether any rule covers inst, short-circuiting on the
// first match.
func (s *Ruleset) CoverAny(inst dataset.Instance) bool {
	for _, r := range s.rules {
		if r.CoverInstance(inst) {
			return true
		}
	}
	return false
}

// removeCovered returns the subset of instances not covered by r.
func removeCovered(instances []dataset.Instance, r *rule.Rule) []dataset.Instance {
	if len(instances) == 0 {
		return instances
	}
	out := make([]dataset.Instance, 0, len(instances))
	for _, inst := range instances {
		if !r.CoverInstance(inst) {
			out = append(out, inst)
		}
	}
	return out
}

// DL accumulates rule.DL() + rule.DLErr(remaining P, remaining N) over
// the rules in order, removing each rule's covered instances from the
// remaining sets before processing the next rule. pos and neg are
// consumed by value (as slices, re-sliced locally) — the caller's
// backing arrays are never mutated.
func (s *Ruleset) DL(pos, neg []dataset.Instance) float64 {
	remainingPos := pos
	remainingNeg := neg
	var total float64
	for _, r := range s.rules {
		total += r.DL() + r.DLErr(remainingPos, remainingNeg)
		remainingPos = removeCovered(remainingPos, r)
		remainingNeg = removeCovered(remainingNeg, r)
	}
	return total
}

// totalDLErr sums dl_err across the ruleset with the rule at h
// temporarily substituted by override, without mutating the live rule.
// Used by PruneRuleInContext to measure candidate prefixes before
// committing to one.
func (s *Ruleset) totalDLErr(h Handle, override *rule.Rule, pos, neg []dataset.Instance) float64 {
	remainingPos := pos
	remainingNeg := neg
	var total float64
	for i, r := range s.rules {
		active := r
		if Handle(i) == h {
			active = override
		}
		total += active.DLErr(remainingPos, remainingNeg)
		remainingPos = removeCovered(remainingPos, active)
		remainingNeg = removeCovered(remainingNeg, active)
	}
	return total
}

// PruneRuleInContext evaluates every prefix length of the rule at handle
// — from its full length down to zero conditions — against the
// aggregate dl_err of the whole ruleset, and keeps whichever prefix
// minimizes it. Measurement happens on a scratch copy; the live rule is
// mutated exactly once, to the winning length.
func (s *Ruleset) PruneRuleInContext(h Handle, pos, neg []dataset.Instance) {
	original := s.rules[h]
	fullConditions := append([]rule.Condition(nil), original.Conditions()...)

	bestDLErr := s.totalDLErr(h, original, pos, neg)
	bestLen := len(fullConditions)

	for length := len(fullConditions) - 1; length >= 0; length-- {
		trial := original.Clone()
		trial.RemoveAllConditions()
		for _, c := range fullConditions[:length] {
			trial.AddCondition(c)
		}
		dlErr := s.totalDLErr(h, trial, pos, neg)
		if dlErr < bestDLErr {
			bestDLErr = dlErr
			bestLen = length
		}
	}

	final := original.Clone()
	final.RemoveAllConditions()
	for _, c := range fullConditions[:bestLen] {
		final.AddCondition(c)
	}
	s.rules[h] = final
}

// String renders the ruleset the way the text dump wants each class's
// block rendered: one "IF ..." line per rule, "OR"-joined.
func (s *Ruleset) String() string {
	lines := make([]string, len(s.rules))
	for i, r := range s.rules {
		lines[i] = "IF " + r.String()
	}
	return strings.Join(lines, " OR\n") + "\n"
}
