package rule

import (
	"math"
	"testing"

	"github.com/ripperk-go/ripperk/internal/dataset"
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

func splitByClass(instances []dataset.Instance, class string) (pos, neg []dataset.Instance) {
	for _, inst := range instances {
		if inst.Class == class {
			pos = append(pos, inst)
		} else {
			neg = append(neg, inst)
		}
	}
	return
}

func TestRule_EmptyCoversEverything(t *testing.T) {
	cat := dataset.NewCatalog(colorInstances())
	r := New(cat)
	if !r.Empty() {
		t.Fatal("new rule should be empty")
	}
	if got := r.Cover(colorInstances()); got != len(colorInstances()) {
		t.Errorf("Cover() = %d, want %d", got, len(colorInstances()))
	}
}

func TestRule_MissingAttributeDoesNotFalsify(t *testing.T) {
	cat := dataset.NewCatalog(colorInstances())
	r := New(cat)
	r.AddCondition(Condition{Op: EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	noAttr := dataset.Instance{Class: "?"}
	if !r.CoverInstance(noAttr) {
		t.Error("a condition naming an absent attribute must not falsify the rule")
	}
}

func TestRule_GrowSeparatesByColor(t *testing.T) {
	instances := colorInstances()
	cat := dataset.NewCatalog(instances)
	pos, neg := splitByClass(instances, "+")

	r := New(cat)
	r.Grow(pos, neg)

	if len(r.Conditions()) != 1 {
		t.Fatalf("grown rule has %d conditions, want 1: %v", len(r.Conditions()), r.Conditions())
	}
	c := r.Conditions()[0]
	if c.AttrName != "color" || c.Op != EQ || c.AttrVal.String() != "red" {
		t.Errorf("condition = %v, want color == red", c)
	}
	if r.Cover(neg) != 0 {
		t.Error("grown rule should cover zero negatives on a perfectly separable dataset")
	}
}

func TestRule_SingleConditionNeverPruned(t *testing.T) {
	cat := dataset.NewCatalog(colorInstances())
	r := New(cat)
	r.AddCondition(Condition{Op: EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})
	r.Prune(colorInstances(), nil)
	if len(r.Conditions()) != 1 {
		t.Errorf("single-condition rule was pruned to %d conditions", len(r.Conditions()))
	}
}

func TestRule_PruneNeverWorsensMetric(t *testing.T) {
	instances := colorInstances()
	cat := dataset.NewCatalog(instances)
	pos, neg := splitByClass(instances, "+")

	r := New(cat)
	r.AddCondition(Condition{Op: EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})
	// Force a second, useless condition so pruning has something to trim.
	r.conditions = append(r.conditions, Condition{Op: EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	before := pruneMetric(r.Cover(pos), r.Cover(neg))
	r.Prune(pos, neg)
	after := pruneMetric(r.Cover(pos), r.Cover(neg))

	if after < before {
		t.Errorf("pruning decreased the metric: before=%v after=%v", before, after)
	}
}

func TestRule_Clone_CopiesConditions(t *testing.T) {
	cat := dataset.NewCatalog(colorInstances())
	r := New(cat)
	r.AddCondition(Condition{Op: EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	clone := r.Clone()
	if len(clone.Conditions()) != 1 {
		t.Fatalf("Clone() dropped conditions: got %d, want 1", len(clone.Conditions()))
	}

	instances := colorInstances()
	if clone.Cover(instances) != r.Cover(instances) {
		t.Error("a cloned rule must have the same cover counts as its origin")
	}

	// Mutating the clone must not affect the original.
	clone.AddCondition(Condition{Op: EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("blue")})
	if len(r.Conditions()) != 1 {
		t.Error("mutating a clone mutated the original rule")
	}
}

func TestRule_DL_NotNaNForNonEmptyRule(t *testing.T) {
	// A smoke test on the formula shape for a one-condition rule, not an
	// exact value.
	instances := colorInstances()
	cat := dataset.NewCatalog(instances)

	short := New(cat)
	short.AddCondition(Condition{Op: EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	if math.IsNaN(short.DL()) {
		t.Error("DL() should not be NaN for a non-empty rule over a non-empty catalog")
	}
}

func TestRule_DLErr_NotNaN(t *testing.T) {
	instances := colorInstances()
	cat := dataset.NewCatalog(instances)
	pos, neg := splitByClass(instances, "+")

	r := New(cat)
	r.AddCondition(Condition{Op: EQ, AttrName: "color", AttrVal: dataset.DiscreteValue("red")})

	got := r.DLErr(pos, neg)
	if math.IsNaN(got) {
		t.Error("DLErr should not be NaN for a valid rule/dataset pair")
	}
}
