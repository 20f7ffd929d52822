package dataset

import "fmt"

// Type distinguishes the two attribute kinds the catalog tracks. A name is
// bound to exactly one Type for the lifetime of a dataset.
type Type uint8

const (
	// Discrete attributes compare by string equality only.
	Discrete Type = iota
	// Continuous attributes support ordering as well as equality.
	Continuous
)

func (t Type) String() string {
	if t == Continuous {
		return "continuous"
	}
	return "discrete"
}

// Value is a tagged union of {discrete string, continuous float64}.
// Equality and ordering are defined only between values sharing a tag;
// callers are responsible for never comparing across tags (the catalog's
// type map guarantees tag agreement at every use site in this codebase).
type Value struct {
	typ  Type
	str  string
	real float64
}

// DiscreteValue builds a discrete Value.
func DiscreteValue(s string) Value { return Value{typ: Discrete, str: s} }

// ContinuousValue builds a continuous Value.
func ContinuousValue(f float64) Value { return Value{typ: Continuous, real: f} }

// Type reports which tag the value carries.
func (v Value) Type() Type { return v.typ }

// String returns the discrete payload. Only meaningful when Type() == Discrete.
func (v Value) String() string { return v.str }

// Float returns the continuous payload. Only meaningful when Type() == Continuous.
func (v Value) Float() float64 { return v.real }

// Equal compares two values of the same tag.
func (v Value) Equal(o Value) bool {
	if v.typ == Continuous {
		return v.real == o.real
	}
	return v.str == o.str
}

// Less compares two continuous values. Panics if either is discrete —
// callers never invoke this across tags by construction.
func (v Value) Less(o Value) bool {
	if v.typ != Continuous || o.typ != Continuous {
		panic(fmt.Sprintf("dataset: Less called on non-continuous values (%v, %v)", v.typ, o.typ))
	}
	return v.real < o.real
}

// LessOrEqual compares two continuous values.
func (v Value) LessOrEqual(o Value) bool { return v.Less(o) || v.Equal(o) }

// GreaterOrEqual compares two continuous values.
func (v Value) GreaterOrEqual(o Value) bool { return !v.Less(o) }
