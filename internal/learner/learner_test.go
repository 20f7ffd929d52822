package learner

import (
	"context"
	"math"
	"testing"

	"github.com/ripperk-go/ripperk/internal/dataset"
)

func discreteInstance(name, value, class string) dataset.Instance {
	return dataset.Instance{Class: class, Attributes: []dataset.Attribute{
		{Name: name, Type: dataset.Discrete, Value: dataset.DiscreteValue(value)},
	}}
}

func continuousInstance(name string, value float64, class string) dataset.Instance {
	return dataset.Instance{Class: class, Attributes: []dataset.Attribute{
		{Name: name, Type: dataset.Continuous, Value: dataset.ContinuousValue(value)},
	}}
}

func TestLearningOrder_AscendingPrevalence(t *testing.T) {
	instances := []dataset.Instance{
		discreteInstance("color", "red", "rare"),
		discreteInstance("color", "blue", "common"),
		discreteInstance("color", "blue", "common"),
		discreteInstance("color", "blue", "common"),
	}
	order := learningOrder(instances)
	if len(order) != 2 {
		t.Fatalf("learningOrder() = %v, want 2 classes", order)
	}
	if order[0].name != "rare" || order[1].name != "common" {
		t.Errorf("learningOrder() = %v, want [rare, common] (ascending prevalence)", order)
	}
}

func TestFit_TwoAttributeDiscreteSeparation_S2(t *testing.T) {
	instances := []dataset.Instance{
		discreteInstance("color", "red", "+"),
		discreteInstance("color", "red", "+"),
		discreteInstance("color", "blue", "-"),
		discreteInstance("color", "blue", "-"),
		discreteInstance("color", "blue", "-"),
	}
	cat := dataset.NewCatalog(instances)
	l := New(cat, Config{Ratio: 2.0 / 3.0, K: 2}, nil, nil)

	m := l.Fit(context.Background(), instances)

	if m.DefaultClass() != "-" {
		t.Fatalf("default class = %q, want %q (the majority class)", m.DefaultClass(), "-")
	}
	if len(m.ClassOrder()) != 1 || m.ClassOrder()[0] != "+" {
		t.Fatalf("class order = %v, want [+]", m.ClassOrder())
	}

	rs := m.Get("+")
	if rs == nil || rs.Size() != 1 {
		t.Fatalf("minority ruleset has %v rules, want exactly 1", rs)
	}

	for _, inst := range instances {
		if got := m.Classify(inst); got != inst.Class {
			t.Errorf("Classify(%v) = %q, want %q", inst.Attributes, got, inst.Class)
		}
	}
}

func TestFit_ContinuousThreshold_S3(t *testing.T) {
	instances := []dataset.Instance{
		continuousInstance("x", 1, "lo"),
		continuousInstance("x", 2, "lo"),
		continuousInstance("x", 3, "hi"),
		continuousInstance("x", 4, "hi"),
		continuousInstance("x", 5, "hi"),
	}
	cat := dataset.NewCatalog(instances)
	l := New(cat, Config{Ratio: 2.0 / 3.0, K: 2}, nil, nil)

	m := l.Fit(context.Background(), instances)

	for _, inst := range instances {
		if got := m.Classify(inst); got != inst.Class {
			t.Errorf("Classify(x=%v) = %q, want %q", inst.Attributes[0].Value, got, inst.Class)
		}
	}
}

func TestFit_EmptyDataset_ProducesEmptyModel(t *testing.T) {
	cat := dataset.NewCatalog(nil)
	l := New(cat, Config{Ratio: 2.0 / 3.0, K: 2}, nil, nil)

	m := l.Fit(context.Background(), nil)
	if len(m.ClassOrder()) != 0 {
		t.Errorf("class order = %v, want empty", m.ClassOrder())
	}
}

func TestOptimize_NeverWorsensDL_S5(t *testing.T) {
	instances := []dataset.Instance{
		discreteInstance("color", "red", "+"),
		discreteInstance("color", "red", "+"),
		discreteInstance("color", "blue", "-"),
		discreteInstance("color", "blue", "-"),
	}
	cat := dataset.NewCatalog(instances)
	l := New(cat, Config{Ratio: 2.0 / 3.0, K: 0}, nil, nil)

	var pos, neg []dataset.Instance
	for _, inst := range instances {
		if inst.Class == "+" {
			pos = append(pos, inst)
		} else {
			neg = append(neg, inst)
		}
	}

	rs := l.irep(context.Background(), "+", pos, neg, instances, "-")
	before := rs.DL(pos, neg)
	l.optimize(rs, "+", pos, neg)
	after := rs.DL(pos, neg)

	if after > before+1e-9 {
		t.Errorf("optimize() worsened DL: before=%v after=%v", before, after)
	}
}

func TestSplitGrowPrune_CoversWholeSlice(t *testing.T) {
	instances := make([]dataset.Instance, 7)
	grow, prune := splitGrowPrune(instances, 2.0/3.0)
	if len(grow)+len(prune) != len(instances) {
		t.Fatalf("grow+prune = %d, want %d", len(grow)+len(prune), len(instances))
	}
	if len(grow) == 0 {
		t.Error("grow split should never be empty for a non-empty input")
	}
}

func TestBaselineDL_NotNaN(t *testing.T) {
	instances := []dataset.Instance{
		discreteInstance("color", "red", "+"),
		discreteInstance("color", "blue", "-"),
	}
	dl := baselineDL(instances, "-")
	if math.IsNaN(dl) {
		t.Error("baselineDL should not be NaN")
	}
	if dl < 0 {
		t.Error("baselineDL should be clamped at 0")
	}
}
