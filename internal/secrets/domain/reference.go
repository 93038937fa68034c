package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ParseReference converts caller supplied reference text into a record ID. Only
// the canonical 36 character UUID form is accepted.
func ParseReference(reference string) (uuid.UUID, error) {
	reference = strings.TrimSpace(reference)
	if len(reference) != 36 {
		return uuid.Nil, ErrInvalidReference
	}

	id, err := uuid.Parse(reference)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidReference
	}

	return id, nil
}
