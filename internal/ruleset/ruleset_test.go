package ruleset

import (
	"testing"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/rule"
)

func colorInstances() []dataset.Instance {
	mk := func(color, label string) dataset.Instance {
		return dataset.Instance{Class: label, Attributes: []dataset.Attribute{
			{Name: "color", Type: dataset.Discrete, Value: dataset.DiscreteValue(color)},
		}}
	}
	return []dataset.Instance{
		mk("red", "+"), mk("red", "+"), mk("blue", "-"), mk("blue", "-"),
	}
}

func TestRuleset_CoverAny_FirstMatch(t *testing.T) {
	instances := colorInstances()
	cat := dataset.NewCatalog(instances)

	r := rule.New(cat)
	r.AddCondition(rule.Condition{Op: rule.EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	s := New()
	s.AddRule(r)

	if !s.CoverAny(instances[0]) {
		t.Error("ruleset should cover a red instance")
	}
	if s.CoverAny(instances[2]) {
		t.Error("ruleset should not cover a blue instance")
	}
}

func TestRuleset_HandlesStableAcrossReplace(t *testing.T) {
	instances := colorInstances()
	cat := dataset.NewCatalog(instances)

	r1 := rule.New(cat)
	r1.AddCondition(rule.Condition{Op: rule.EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	s := New()
	h := s.AddRule(r1)

	r2 := rule.New(cat)
	r2.AddCondition(rule.Condition{Op: rule.EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("blue")})
	s.ReplaceRule(h, r2)

	if !s.CoverAny(instances[2]) {
		t.Error("after replacement the handle should point at the new (blue) rule")
	}
	if s.CoverAny(instances[0]) {
		t.Error("after replacement the handle should no longer cover red instances")
	}
}

func TestRuleset_DL_RemovesCoveredInstancesBetweenRules(t *testing.T) {
	instances := colorInstances()
	cat := dataset.NewCatalog(instances)

	r := rule.New(cat)
	r.AddCondition(rule.Condition{Op: rule.EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	s := New()
	s.AddRule(r)

	pos := []dataset.Instance{instances[0], instances[1]}
	neg := []dataset.Instance{instances[2], instances[3]}

	dl := s.DL(pos, neg)
	if dl != dl { // NaN check
		t.Fatalf("DL() returned NaN")
	}
}

func TestRuleset_PruneRuleInContext_RedundantConditionKeepsCoverage(t *testing.T) {
	instances := colorInstances()
	cat := dataset.NewCatalog(instances)

	r := rule.New(cat)
	r.AddCondition(rule.Condition{Op: rule.EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})
	// A second, redundant condition on the same value — it changes no
	// coverage, so whichever prefix pruning keeps must cover the same
	// instances as the original rule.
	r.AddCondition(rule.Condition{Op: rule.EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	s := New()
	h := s.AddRule(r)

	pos := []dataset.Instance{instances[0], instances[1]}
	neg := []dataset.Instance{instances[2], instances[3]}

	s.PruneRuleInContext(h, pos, neg)

	if got, want := s.GetRule(h).Cover(instances), r.Cover(instances); got != want {
		t.Errorf("pruned rule covers %d instances, want %d", got, want)
	}
}

func TestRuleset_Size(t *testing.T) {
	s := New()
	if s.Size() != 0 {
		t.Fatalf("new ruleset size = %d, want 0", s.Size())
	}
	cat := dataset.NewCatalog(nil)
	s.AddRule(rule.New(cat))
	if s.Size() != 1 {
		t.Errorf("size after one AddRule = %d, want 1", s.Size())
	}
}
