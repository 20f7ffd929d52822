// Package rule implements the atomic Condition test and the Rule type:
// an ordered conjunction of Conditions with FOIL-gain growth,
// reduced-error pruning, coverage counting and MDL accounting.
package rule

import (
	"fmt"

	"github.com/ripperk-go/ripperk/internal/dataset"
)

// Operator is one of the three atomic comparisons a Condition may apply.
type Operator uint8

const (
	EQ Operator = iota
	LE
	GE
)

func (op Operator) String() string {
	switch op {
	case EQ:
		return "=="
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "?"
	}
}

// Condition is a single atomic test `attr OP value`. EQ is only ever
// constructed against discrete attributes; LE and GE only against
// continuous ones — the catalog's type map guarantees this at every
// construction site in this codebase.
type Condition struct {
	Op       Operator
	AttrName string
	AttrVal  dataset.Value
}

// Apply evaluates the condition against a candidate value. value and
// AttrVal must share a tag; callers guarantee this by construction.
func (c Condition) Apply(value dataset.Value) bool {
	switch c.Op {
	case EQ:
		return value.Equal(c.AttrVal)
	case LE:
		return value.LessOrEqual(c.AttrVal)
	case GE:
		return value.GreaterOrEqual(c.AttrVal)
	default:
		return false
	}
}

// Falsifies reports whether the condition rules out an instance that
// carries the given attribute value for its name — the complement of
// Apply, named for readability at call sites that check for violation.
func (c Condition) Falsifies(value dataset.Value) bool { return !c.Apply(value) }

func (c Condition) String() string {
	if c.AttrVal.Type() == dataset.Continuous {
		return fmt.Sprintf("%s %s %s", c.AttrName, c.Op, formatFloat(c.AttrVal.Float()))
	}
	return fmt.Sprintf("%s %s %s", c.AttrName, c.Op, c.AttrVal.String())
}
