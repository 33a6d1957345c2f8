package model

import "strings"

// Status is a player's stored payment status.
type Status string

// Canonical stored status values.
const (
	StatusUnpaid   Status = "UNPAID"
	StatusCash     Status = "CASH"
	StatusTransfer Status = "TRANSFER"
)

// legacyStatuses maps the glyph-decorated literals of the original
// spreadsheet to canonical values, for reading back old exports.
var legacyStatuses = map[string]Status{
	"❌ belum":    StatusUnpaid,
	"belum":      StatusUnpaid,
	"💵 cash":     StatusCash,
	"💳 transfer": StatusTransfer,
}

// ParseStatus normalizes a stored or user-supplied status string to its
// canonical value. Accepts canonical spellings case-insensitively plus the
// legacy glyph forms. Returns ErrInvalidStatus for anything else.
func ParseStatus(raw string) (Status, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "unpaid":
		return StatusUnpaid, nil
	case "cash":
		return StatusCash, nil
	case "transfer":
		return StatusTransfer, nil
	}
	if st, ok := legacyStatuses[s]; ok {
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether s is one of the canonical status values.
func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusCash || s == StatusTransfer
}
