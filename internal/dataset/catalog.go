package dataset

import (
	"fmt"
	"sort"

	"github.com/ripperk-go/ripperk/internal/rerr"
)

// Catalog maps attribute names to their inferred type and the set of
// values observed for them across a training dataset. It is built once,
// treated as immutable for the rest of a training or inference run, and
// shared-read by every Rule that consults it.
type Catalog struct {
	types  map[string]Type
	values map[string]map[string]Value // keyed by name, then by a canonical string key per value
	order  []string                    // names in first-seen order; recorded by NewCatalog but not read by any method (Names sorts instead)
}

func valueKey(v Value) string {
	if v.typ == Continuous {
		return fmt.Sprintf("f:%v", v.real)
	}
	return "s:" + v.str
}

// NewCatalog builds a catalog from a dataset in one pass. On conflicting
// types observed for the same name, the first-seen type wins — the CSV
// producer is assumed to be internally consistent.
func NewCatalog(instances []Instance) *Catalog {
	c := &Catalog{
		types:  make(map[string]Type),
		values: make(map[string]map[string]Value),
	}
	for _, inst := range instances {
		for _, attr := range inst.Attributes {
			if _, seen := c.types[attr.Name]; !seen {
				c.types[attr.Name] = attr.Type
				c.values[attr.Name] = make(map[string]Value)
				c.order = append(c.order, attr.Name)
			}
			c.values[attr.Name][valueKey(attr.Value)] = attr.Value
		}
	}
	return c
}

// Names returns attribute names in deterministic (sorted) order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Type reports the type bound to name.
func (c *Catalog) Type(name string) (Type, error) {
	t, ok := c.types[name]
	if !ok {
		return 0, fmt.Errorf("catalog: %q: %w", name, rerr.ErrUnknownAttribute)
	}
	return t, nil
}

// Values returns the observed values for name, in deterministic order:
// continuous values ascending, discrete values lexicographically.
func (c *Catalog) Values(name string) ([]Value, error) {
	vs, ok := c.values[name]
	if !ok {
		return nil, fmt.Errorf("catalog: %q: %w", name, rerr.ErrUnknownAttribute)
	}
	out := make([]Value, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	typ := c.types[name]
	sort.Slice(out, func(i, j int) bool {
		if typ == Continuous {
			return out[i].real < out[j].real
		}
		return out[i].str < out[j].str
	})
	return out, nil
}

// TotalValuePairs sums |values(name)| over every known name — the `n`
// term in the rule description-length formula.
func (c *Catalog) TotalValuePairs() int {
	total := 0
	for _, vs := range c.values {
		total += len(vs)
	}
	return total
}
