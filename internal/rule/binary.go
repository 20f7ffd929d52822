package rule

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/rerr"
)

// continuousPayloadBytes is the implementation-defined fixed width for a
// continuous AttributeValue on disk: an IEEE-754 float64, matching the
// float64 backing Value's continuous tag. Readers and writers within
// this implementation always agree on this width; cross-implementation
// portability of the payload is explicitly out of scope per spec.md §6.
const continuousPayloadBytes = 8

// WriteBinary writes the rule in the on-disk layout from spec.md §6:
// a u64 condition count, then per condition a u32 operator, a u64 name
// length + name bytes, and either an 8-byte float64 payload (continuous)
// or a u64 value length + value bytes (discrete).
func (r *Rule) WriteBinary(w io.Writer) error {
	if err := writeU64(w, uint64(len(r.conditions))); err != nil {
		return fmt.Errorf("rule: writing condition count: %w", err)
	}
	for _, c := range r.conditions {
		if err := binary.Write(w, binary.LittleEndian, uint32(c.Op)); err != nil {
			return fmt.Errorf("rule: writing operator: %w", err)
		}
		if err := writeString(w, c.AttrName); err != nil {
			return fmt.Errorf("rule: writing attribute name: %w", err)
		}

		typ, err := r.catalog.Type(c.AttrName)
		if err != nil {
			return fmt.Errorf("rule: %w", err)
		}
		if typ == dataset.Continuous {
			if err := binary.Write(w, binary.LittleEndian, c.AttrVal.Float()); err != nil {
				return fmt.Errorf("rule: writing continuous payload: %w", err)
			}
		} else {
			if err := writeString(w, c.AttrVal.String()); err != nil {
				return fmt.Errorf("rule: writing discrete value: %w", err)
			}
		}
	}
	return nil
}

// ReadBinary reads a rule previously written by WriteBinary. The rule
// must already be bound to the catalog that was used to train it, since
// the continuous-vs-discrete branch is resolved by attribute name
// lookup, not by a type tag on disk.
func (r *Rule) ReadBinary(reader io.Reader) error {
	count, err := readU64(reader)
	if err != nil {
		return fmt.Errorf("rule: reading condition count: %w", err)
	}
	r.conditions = nil
	for i := uint64(0); i < count; i++ {
		var opRaw uint32
		if err := binary.Read(reader, binary.LittleEndian, &opRaw); err != nil {
			return fmt.Errorf("rule: reading operator: %w: %w", err, rerr.ErrMalformedModel)
		}
		name, err := readString(reader)
		if err != nil {
			return fmt.Errorf("rule: reading attribute name: %w", err)
		}

		typ, err := r.catalog.Type(name)
		if err != nil {
			return fmt.Errorf("rule: %w", err)
		}

		var val dataset.Value
		if typ == dataset.Continuous {
			var f float64
			if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
				return fmt.Errorf("rule: reading continuous payload: %w: %w", err, rerr.ErrMalformedModel)
			}
			val = dataset.ContinuousValue(f)
		} else {
			s, err := readString(reader)
			if err != nil {
				return fmt.Errorf("rule: reading discrete value: %w", err)
			}
			val = dataset.DiscreteValue(s)
		}

		r.conditions = append(r.conditions, Condition{Op: Operator(opRaw), AttrName: name, AttrVal: val})
	}
	return nil
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
	// A corrupt length prefix can otherwise request an unbounded allocation.
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
