package model

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders the model as the chained IF/THEN/ELSE text dump from
// spec.md §6: each class's ruleset body ("IF ... OR\nIF ...") with
// " THEN <class>" appended directly onto its last line, then "ELSE "
// (no trailing newline) running straight into the next class's "IF ...",
// ending in "ELSE <default>\n".
func (m *Model) WriteText(w io.Writer) error {
	for _, class := range m.order {
		rs := m.rulesets[class]
		body := strings.TrimSuffix(rs.String(), "\n")
		if _, err := fmt.Fprintf(w, "%s THEN %s\n", body, class); err != nil {
			return fmt.Errorf("model: writing ruleset for class %q: %w", class, err)
		}
		if _, err := io.WriteString(w, "ELSE "); err != nil {
			return fmt.Errorf("model: writing ELSE clause after class %q: %w", class, err)
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n", m.defaultClass); err != nil {
		return fmt.Errorf("model: writing default class: %w", err)
	}
	return nil
}
