package httpapi

import (
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// newRunID stamps a classify response with a fresh run identifier, so a
// client-visible prediction can be correlated back to server-side logs
// and traces for that request.
func newRunID() strfmt.UUID {
	return strfmt.UUID(uuid.NewString())
}
