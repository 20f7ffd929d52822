// Package model holds the trained classifier: a Ruleset per non-default
// class, the class evaluation order, and the default class, plus the
// binary and human-readable serialization formats for it.
package model

import (
	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/ruleset"
)

// Model maps each learned class to its Ruleset, tracks the evaluation
// order (the order classes were learned in, which must equal the order
// they are checked in at classification time — see DESIGN.md's ordering
// decision), and names the default class returned when nothing matches.
type Model struct {
	catalog      *dataset.Catalog
	rulesets     map[string]*ruleset.Ruleset
	order        []string
	defaultClass string
}

// New returns an empty model bound to catalog.
func New(catalog *dataset.Catalog) *Model {
	return &Model{catalog: catalog, rulesets: make(map[string]*ruleset.Ruleset)}
}

// Catalog returns the attribute catalog the model was trained against.
func (m *Model) Catalog() *dataset.Catalog { return m.catalog }

// Add registers a ruleset for className and appends it to the
// evaluation order.
func (m *Model) Add(className string, rs *ruleset.Ruleset) {
	m.rulesets[className] = rs
	m.order = append(m.order, className)
}

// Get returns the ruleset for className, or nil if none was added
// (true for the default class, which has no induced ruleset).
func (m *Model) Get(className string) *ruleset.Ruleset { return m.rulesets[className] }

// SetDefaultClass records the class returned when no ruleset covers an
// instance.
func (m *Model) SetDefaultClass(name string) { m.defaultClass = name }

// DefaultClass returns the default class name.
func (m *Model) DefaultClass() string { return m.defaultClass }

// ClassOrder returns the classes in evaluation order.
func (m *Model) ClassOrder() []string { return m.order }

// Classify returns the first class in evaluation order whose ruleset
// covers inst, or the default class if none do. Classification is total:
// every instance receives a class.
func (m *Model) Classify(inst dataset.Instance) string {
	for _, class := range m.order {
		if rs := m.rulesets[class]; rs != nil && rs.CoverAny(inst) {
			return class
		}
	}
	return m.defaultClass
}
