package dataset

import (
	"errors"
	"testing"

	"github.com/ripperk-go/ripperk/internal/rerr"
)

func sample() []Instance {
	return []Instance{
		{Class: "+", Attributes: []Attribute{
			{Name: "color", Type: Discrete, Value: DiscreteValue("red")},
			{Name: "x", Type: Continuous, Value: ContinuousValue(1)},
		}},
		{Class: "-", Attributes: []Attribute{
			{Name: "color", Type: Discrete, Value: DiscreteValue("blue")},
			{Name: "x", Type: Continuous, Value: ContinuousValue(2)},
		}},
		{Class: "-", Attributes: []Attribute{
			{Name: "color", Type: Discrete, Value: DiscreteValue("red")},
			{Name: "x", Type: Continuous, Value: ContinuousValue(2)},
		}},
	}
}

func TestCatalog_NamesAndTypes(t *testing.T) {
	c := NewCatalog(sample())
	names := c.Names()
	if len(names) != 2 || names[0] != "color" || names[1] != "x" {
		t.Errorf("Names() = %v, want [color x]", names)
	}
	typ, err := c.Type("color")
	if err != nil || typ != Discrete {
		t.Errorf("Type(color) = %v, %v, want Discrete", typ, err)
	}
	typ, err = c.Type("x")
	if err != nil || typ != Continuous {
		t.Errorf("Type(x) = %v, %v, want Continuous", typ, err)
	}
}

func TestCatalog_ValuesDeduplicatedAndSorted(t *testing.T) {
	c := NewCatalog(sample())
	colors, err := c.Values("color")
	if err != nil {
		t.Fatalf("Values(color): %v", err)
	}
	if len(colors) != 2 || colors[0].String() != "blue" || colors[1].String() != "red" {
		t.Errorf("Values(color) = %v, want [blue red]", colors)
	}

	xs, err := c.Values("x")
	if err != nil {
		t.Fatalf("Values(x): %v", err)
	}
	if len(xs) != 2 || xs[0].Float() != 1 || xs[1].Float() != 2 {
		t.Errorf("Values(x) = %v, want [1 2]", xs)
	}
}

func TestCatalog_UnknownAttribute(t *testing.T) {
	c := NewCatalog(sample())
	if _, err := c.Type("nope"); !errors.Is(err, rerr.ErrUnknownAttribute) {
		t.Errorf("Type(nope) err = %v, want ErrUnknownAttribute", err)
	}
	if _, err := c.Values("nope"); !errors.Is(err, rerr.ErrUnknownAttribute) {
		t.Errorf("Values(nope) err = %v, want ErrUnknownAttribute", err)
	}
}

func TestCatalog_TotalValuePairs(t *testing.T) {
	c := NewCatalog(sample())
	if got := c.TotalValuePairs(); got != 4 {
		t.Errorf("TotalValuePairs() = %d, want 4", got)
	}
}

func TestCatalog_Deterministic(t *testing.T) {
	c1 := NewCatalog(sample())
	c2 := NewCatalog(sample())
	if c1.Names()[0] != c2.Names()[0] || c1.Names()[1] != c2.Names()[1] {
		t.Error("Names() is not deterministic across identical inputs")
	}
}
