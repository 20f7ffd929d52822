// Package rerr defines the typed error kinds shared by the dataset,
// model and CLI layers. Numeric edge cases (FOIL gain denominators,
// out-of-domain description-length arguments) are absorbed locally by
// their callers and never surface as errors here — only I/O and
// structural failures do.
package rerr

import "errors"

var (
	// ErrMissingDataset is returned when the dataset path is absent or unreadable.
	ErrMissingDataset = errors.New("dataset path is missing or unreadable")
	// ErrMissingModel is returned when the model path is absent or unreadable.
	ErrMissingModel = errors.New("model path is missing or unreadable")
	// ErrMalformedDataset is returned on row arity mismatch or an unparseable header.
	ErrMalformedDataset = errors.New("dataset is malformed")
	// ErrMalformedModel is returned on binary truncation or an inconsistent length prefix.
	ErrMalformedModel = errors.New("model file is malformed")
	// ErrUnknownAttribute is returned by a catalog lookup for a name never observed during training.
	ErrUnknownAttribute = errors.New("unknown attribute")
)
