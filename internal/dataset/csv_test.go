package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/ripperk-go/ripperk/internal/rerr"
)

func TestLoadCSV_DiscreteAndContinuous(t *testing.T) {
	csv := "color,x,label\nred,1.5,+\nblue,2,-\n"
	instances, err := LoadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(instances) != 2 {
		t.Fatalf("got %d instances, want 2", len(instances))
	}

	color, ok := instances[0].Lookup("color")
	if !ok || color.Type != Discrete || color.Value.String() != "red" {
		t.Errorf("color attribute = %+v, want discrete red", color)
	}
	x, ok := instances[0].Lookup("x")
	if !ok || x.Type != Continuous || x.Value.Float() != 1.5 {
		t.Errorf("x attribute = %+v, want continuous 1.5", x)
	}
	if instances[0].Class != "+" {
		t.Errorf("class = %q, want +", instances[0].Class)
	}
}

func TestLoadCSV_EmptyCellSkipped(t *testing.T) {
	csv := "a,b,label\n1,,yes\n"
	instances, err := LoadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if _, ok := instances[0].Lookup("b"); ok {
		t.Error("empty cell should be omitted from the instance")
	}
	if _, ok := instances[0].Lookup("a"); !ok {
		t.Error("non-empty cell should be present")
	}
}

func TestLoadCSV_ArityMismatch(t *testing.T) {
	csv := "a,b,label\n1,2,3,yes\n"
	_, err := LoadCSV(strings.NewReader(csv))
	if !errors.Is(err, rerr.ErrMalformedDataset) {
		t.Errorf("err = %v, want ErrMalformedDataset", err)
	}
}

func TestLoadCSV_EmptyClassRejected(t *testing.T) {
	csv := "a,label\n1,\n"
	_, err := LoadCSV(strings.NewReader(csv))
	if !errors.Is(err, rerr.ErrMalformedDataset) {
		t.Errorf("err = %v, want ErrMalformedDataset", err)
	}
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	if !errors.Is(err, rerr.ErrMalformedDataset) {
		t.Errorf("err = %v, want ErrMalformedDataset", err)
	}
}
