package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// promptForPath interactively asks for a required file path when a flag
// was left empty, rather than failing the command outright.
func promptForPath(label, placeholder string) (string, error) {
	var value string
	field := huh.NewInput().
		Title(label).
		Placeholder(placeholder).
		Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		}).
		Value(&value)

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return "", fmt.Errorf("prompting for %s: %w", label, err)
	}
	return value, nil
}

// promptForAttributes interactively collects attribute=value pairs for
// classify when none were given as flags.
func promptForAttributes(names []string) (map[string]string, error) {
	slots := make(map[string]*string, len(names))
	fields := make([]huh.Field, 0, len(names))
	for _, name := range names {
		s := new(string)
		slots[name] = s
		fields = append(fields, huh.NewInput().Title(name).Value(s))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, fmt.Errorf("prompting for attributes: %w", err)
	}

	values := make(map[string]string, len(names))
	for name, s := range slots {
		values[name] = *s
	}
	return values, nil
}
