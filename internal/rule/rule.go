package rule

import (
	"math"
	"strings"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/mathutil"
)

// Rule is an ordered conjunction of Conditions plus a shared, read-only
// handle to the Attribute catalog it was grown against. The empty rule
// covers every instance.
type Rule struct {
	conditions []Condition
	catalog    *dataset.Catalog
}

// New returns an empty rule bound to catalog.
func New(catalog *dataset.Catalog) *Rule {
	return &Rule{catalog: catalog}
}

// Clone deep-copies the condition list and shares the catalog handle — the
// original reference implementation's copy-assignment dropped the
// condition list, which this implementation must not repeat (see
// DESIGN.md's Open Question decisions).
func (r *Rule) Clone() *Rule {
	out := &Rule{catalog: r.catalog}
	if len(r.conditions) > 0 {
		out.conditions = append([]Condition(nil), r.conditions...)
	}
	return out
}

// Conditions returns the rule's conditions in order. The returned slice
// must not be mutated by the caller.
func (r *Rule) Conditions() []Condition { return r.conditions }

// Empty reports whether the rule has no conditions — it then covers
// every instance.
func (r *Rule) Empty() bool { return len(r.conditions) == 0 }

// AddCondition appends a condition.
func (r *Rule) AddCondition(c Condition) { r.conditions = append(r.conditions, c) }

// RemoveLastCondition drops the most recently added condition.
func (r *Rule) RemoveLastCondition() {
	if len(r.conditions) == 0 {
		return
	}
	r.conditions = r.conditions[:len(r.conditions)-1]
}

// RemoveAllConditions empties the rule.
func (r *Rule) RemoveAllConditions() { r.conditions = nil }

// CoverInstance reports whether every condition holds against inst.
// A condition naming an attribute absent from inst never falsifies the
// rule — it is treated as vacuously satisfied.
func (r *Rule) CoverInstance(inst dataset.Instance) bool {
	for _, c := range r.conditions {
		attr, ok := inst.Lookup(c.AttrName)
		if !ok {
			continue
		}
		if !c.Apply(attr.Value) {
			return false
		}
	}
	return true
}

// Cover counts how many instances the rule covers. The empty rule covers
// every instance.
func (r *Rule) Cover(instances []dataset.Instance) int {
	if r.Empty() {
		return len(instances)
	}
	count := 0
	for _, inst := range instances {
		if r.CoverInstance(inst) {
			count++
		}
	}
	return count
}

// foilGain scores candidate c by the FOIL information-gain heuristic,
// evaluating p'/n' as the coverage of the current rule with c
// conjoined — not c in isolation.
func (r *Rule) foilGain(c Condition, pos, neg []dataset.Instance) float64 {
	p := float64(r.Cover(pos))
	n := float64(r.Cover(neg))

	extended := r.Clone()
	extended.AddCondition(c)
	pNew := float64(extended.Cover(pos))
	nNew := float64(extended.Cover(neg))

	if p+n == 0 || p == 0 {
		return 0
	}
	if pNew+nNew == 0 || pNew == 0 {
		return 0
	}

	gain := p * (math.Log2(pNew/(pNew+nNew)) - math.Log2(p/(p+n)))
	if gain <= 0 {
		return 0
	}
	return gain
}

// Grow greedily appends conditions that maximize FOIL gain against
// (pos, neg) until no candidate has positive gain or the rule covers no
// negatives. Growth against an empty catalog is a no-op.
func (r *Rule) Grow(pos, neg []dataset.Instance) {
	if r.catalog == nil {
		return
	}
	for {
		var (
			haveBest bool
			bestGain float64
			bestCond Condition
		)

		for _, name := range r.catalog.Names() {
			typ, err := r.catalog.Type(name)
			if err != nil {
				continue
			}
			if typ == dataset.Discrete && r.namesCondition(name) {
				continue
			}

			values, err := r.catalog.Values(name)
			if err != nil {
				continue
			}
			for _, v := range values {
				candidates := candidatesFor(name, typ, v)
				for _, cand := range candidates {
					gain := r.foilGain(cand, pos, neg)
					if gain <= 0 {
						continue
					}
					if !haveBest || gain > bestGain {
						haveBest = true
						bestGain = gain
						bestCond = cand
					}
				}
			}
		}

		if !haveBest {
			return
		}
		r.AddCondition(bestCond)
		if r.Cover(neg) == 0 {
			return
		}
	}
}

// namesCondition reports whether the rule already has a condition on
// attribute name — used to forbid duplicate discrete conditions.
func (r *Rule) namesCondition(name string) bool {
	for _, c := range r.conditions {
		if c.AttrName == name {
			return true
		}
	}
	return false
}

func candidatesFor(name string, typ dataset.Type, v dataset.Value) []Condition {
	if typ == dataset.Continuous {
		return []Condition{
			{Op: LE, AttrName: name, AttrVal: v},
			{Op: GE, AttrName: name, AttrVal: v},
		}
	}
	return []Condition{{Op: EQ, AttrName: name, AttrVal: v}}
}

// pruneMetric is (p-n)/(p+n) as defined in spec.md §4.3.
func pruneMetric(p, n int) float64 {
	return float64(p-n) / float64(p+n)
}

// Prune performs reduced-error pruning on the held-out (pos, neg): a
// single-condition rule is never pruned; otherwise every trailing
// truncation is tried and the best-metric prefix is kept (ties keep the
// longer, original prefix).
func (r *Rule) Prune(pos, neg []dataset.Instance) {
	if len(r.conditions) <= 1 {
		return
	}

	maxMetric := pruneMetric(r.Cover(pos), r.Cover(neg))
	best := r.conditions

	tmp := append([]Condition(nil), r.conditions...)
	for i := 0; i < len(r.conditions); i++ {
		tmp = tmp[:len(tmp)-1]
		trial := &Rule{catalog: r.catalog, conditions: tmp}
		metric := pruneMetric(trial.Cover(pos), trial.Cover(neg))
		if metric > maxMetric {
			maxMetric = metric
			best = append([]Condition(nil), tmp...)
		}
	}
	r.conditions = best
}

// DL returns the rule's description length per spec.md §4.3.
func (r *Rule) DL() float64 {
	n := float64(r.catalog.TotalValuePairs())
	k := float64(len(r.conditions))
	pr := k / n
	kBits := math.Ceil(math.Log2(k + 1))
	return math.Ceil(0.5 * (k*math.Log2(1/pr) + (n-k)*math.Log2(1/(1+pr)) + kBits))
}

// DLErr returns the description length of the rule's errors against the
// remaining (pos, neg), per spec.md §4.3.
func (r *Rule) DLErr(pos, neg []dataset.Instance) float64 {
	coveredPos := r.Cover(pos)
	coveredNeg := r.Cover(neg)
	p := coveredPos + coveredNeg
	fp := coveredNeg
	rem := len(pos) + len(neg) - p
	fn := len(pos) - coveredPos
	return mathutil.Log2Combination(p, fp) + mathutil.Log2Combination(rem, fn)
}

// String renders the rule body (without "IF"/"THEN") as
// "cond1 AND cond2 AND ...".
func (r *Rule) String() string {
	parts := make([]string, len(r.conditions))
	for i, c := range r.conditions {
		parts[i] = c.String()
	}
	return strings.Join(parts, " AND ")
}
