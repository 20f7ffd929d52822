package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ripperk-go/ripperk/internal/rerr"
)

// LoadCSV reads a UTF-8, comma-separated dataset: one header row of
// attribute names, then one row per instance with the class label in the
// last column. Empty cells are omitted from the instance's attribute
// list; the class column is never empty. A cell is continuous iff it
// parses as a real number consuming the entire token, otherwise discrete.
func LoadCSV(r io.Reader) ([]Instance, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated manually for a clearer error

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv: empty file: %w", rerr.ErrMalformedDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("csv: header must have at least one attribute column and a class column: %w", rerr.ErrMalformedDataset)
	}
	names := header[:len(header)-1]

	var instances []Instance
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: reading row %d: %w", len(instances)+2, err)
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("csv: row %d has %d columns, want %d: %w", len(instances)+2, len(row), len(header), rerr.ErrMalformedDataset)
		}

		classValue := row[len(row)-1]
		if strings.TrimSpace(classValue) == "" {
			return nil, fmt.Errorf("csv: row %d has an empty class column: %w", len(instances)+2, rerr.ErrMalformedDataset)
		}

		inst := Instance{Class: classValue}
		for i, name := range names {
			cell := row[i]
			if cell == "" {
				continue
			}
			inst.Attributes = append(inst.Attributes, ParseCellAttribute(name, cell))
		}
		instances = append(instances, inst)
	}

	return instances, nil
}

// ParseCellAttribute classifies a single non-empty cell: continuous if
// it parses as a real number consuming the whole token, discrete
// otherwise. Shared with the HTTP classify endpoint, which parses raw
// string attribute values the same way a CSV cell would be parsed.
func ParseCellAttribute(name, cell string) Attribute {
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return Attribute{Name: name, Type: Continuous, Value: ContinuousValue(f)}
	}
	return Attribute{Name: name, Type: Discrete, Value: DiscreteValue(cell)}
}
