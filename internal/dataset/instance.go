package dataset

// Attribute is one (name, type, value) entry attached to an Instance.
type Attribute struct {
	Name  string
	Type  Type
	Value Value
}

// Instance is a single labeled row: a class label plus the attributes
// observed for it. Attribute order is not semantically significant but
// names must be unique within an instance.
type Instance struct {
	Class      string
	Attributes []Attribute
}

// Lookup returns the attribute with the given name, if present. Instances
// with an empty cell for an attribute simply omit it — callers must treat
// a missing attribute as "does not falsify any condition naming it",
// never as an error.
func (i Instance) Lookup(name string) (Attribute, bool) {
	for _, a := range i.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}
