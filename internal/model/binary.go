package model

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/rerr"
	"github.com/ripperk-go/ripperk/internal/rule"
	"github.com/ripperk-go/ripperk/internal/ruleset"
)

// WriteBinary serializes the model in the on-disk layout from spec.md §6:
// a u64 class count, then per class (in evaluation order) a u64 name
// length + name bytes, a u64 rule count and each rule's binary form, and
// finally a trailing u64 default-class-name length + name bytes.
func (m *Model) WriteBinary(w io.Writer) error {
	if err := writeU64(w, uint64(len(m.order))); err != nil {
		return fmt.Errorf("model: writing class count: %w", err)
	}
	for _, class := range m.order {
		if err := writeString(w, class); err != nil {
			return fmt.Errorf("model: writing class name: %w", err)
		}
		rs := m.rulesets[class]
		if err := writeU64(w, uint64(rs.Size())); err != nil {
			return fmt.Errorf("model: writing rule count for class %q: %w", class, err)
		}
		for _, h := range rs.Handles() {
			if err := rs.GetRule(h).WriteBinary(w); err != nil {
				return fmt.Errorf("model: writing rule for class %q: %w", class, err)
			}
		}
	}
	if err := writeString(w, m.defaultClass); err != nil {
		return fmt.Errorf("model: writing default class name: %w", err)
	}
	return nil
}

// ReadBinary reads a model previously written by WriteBinary, rebinding
// every rule to catalog.
func ReadBinary(r io.Reader, catalog *dataset.Catalog) (*Model, error) {
	numClasses, err := readU64(r)
	if err != nil {
		return nil, fmt.Errorf("model: reading class count: %w", err)
	}

	m := New(catalog)
	for i := uint64(0); i < numClasses; i++ {
		className, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("model: reading class name: %w", err)
		}
		numRules, err := readU64(r)
		if err != nil {
			return nil, fmt.Errorf("model: reading rule count for class %q: %w", className, err)
		}
		rs := ruleset.New()
		for j := uint64(0); j < numRules; j++ {
			rl := rule.New(catalog)
			if err := rl.ReadBinary(r); err != nil {
				return nil, fmt.Errorf("model: reading rule for class %q: %w", className, err)
			}
			rs.AddRule(rl)
		}
		m.Add(className, rs)
	}

	defaultClass, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("model: reading default class name: %w", err)
	}
	m.SetDefaultClass(defaultClass)
	return m, nil
}

func writeU64(w io.Writer, v uint64) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func readU64(r io.Reader) (uint64, error) {
	var v uint64
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, fmt.Errorf("%w: %w", err, rerr.ErrMalformedModel)
	}
	return v, nil
}

func writeString(w io.Writer, s string) error {
	if err := writeU64(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	n, err := readU64(r)
	if err != nil {
		return "", err
	}
	const maxReasonableLen = 1 << 28
	if n > maxReasonableLen {
		return "", fmt.Errorf("string length %d exceeds sanity bound: %w", n, rerr.ErrMalformedModel)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("reading %d bytes: %w: %w", n, err, rerr.ErrMalformedModel)
	}
	return string(buf), nil
}

// Save atomically writes the model's binary form to path: it writes to a
// temporary file in the same directory and renames it into place, so a
// reader never observes a partially-written model.
func Save(m *Model, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".model-*.tmp")
	if err != nil {
		return fmt.Errorf("model: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := m.WriteBinary(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("model: writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("model: closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("model: renaming into place: %w", err)
	}
	return nil
}

// Load reads a model binary-encoded file from path, bound to catalog.
func Load(path string, catalog *dataset.Catalog) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: %w: %w", rerr.ErrMissingModel, err)
	}
	defer f.Close()
	return ReadBinary(f, catalog)
}
