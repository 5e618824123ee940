package lending

import (
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
)

// ParseID translates an external identifier into a uuid.UUID.
// It accepts the canonical hyphenated form as well as 32 hex characters.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidID, err)
	}

	if id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}

	return id, nil
}

// FormatID renders id as 32 lowercase hex characters without hyphens.
func FormatID(id uuid.UUID) string {
	return hex.EncodeToString(id[:])
}
