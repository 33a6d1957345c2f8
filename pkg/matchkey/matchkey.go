// Package matchkey derives filesystem-safe identifiers for matches and
// proof images from user-supplied dates, venue names and player names.
package matchkey

import (
	"errors"
	"strings"
	"unicode"
)

// ProofExt is the file extension used for stored proof images.
const ProofExt = ".png"

var (
	// ErrEmptyDate indicates the match date sanitized to an empty string.
	ErrEmptyDate = errors.New("match date is empty")
	// ErrEmptyField indicates the field name has no usable characters.
	ErrEmptyField = errors.New("field name has no alphanumeric characters")
	// ErrEmptyPlayer indicates the player name has no usable characters.
	ErrEmptyPlayer = errors.New("player name has no alphanumeric characters")
)

// FolderName returns the per-match folder name for proof storage.
// The date keeps its text form with '/' replaced by '-'; the field name is
// reduced to alphanumerics and spaces, with spaces replaced by underscores.
// Dates are always handled as text so the folder name and the table filter
// key can never drift apart.
func FolderName(date, fieldName string) (string, error) {
	safeDate := strings.ReplaceAll(strings.TrimSpace(date), "/", "-")
	if safeDate == "" {
		return "", ErrEmptyDate
	}

	var b strings.Builder
	for _, c := range fieldName {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == ' ' {
			b.WriteRune(c)
		}
	}
	safeField := strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
	if safeField == "" {
		return "", ErrEmptyField
	}

	return safeDate + "_" + safeField, nil
}

// ProofFileName returns the proof image file name for a player, keeping
// only alphanumeric characters of the name.
func ProofFileName(playerName string) (string, error) {
	var b strings.Builder
	for _, c := range playerName {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyPlayer
	}
	return b.String() + ProofExt, nil
}

// Collides reports whether two distinct (date, field) pairs sanitize to the
// same folder name. Distinct venues like "GOR-A" and "GOR.A" collapse to the
// same key, which would merge their proof folders; callers must reject such
// pairs at match creation instead of silently merging them.
func Collides(dateA, fieldA, dateB, fieldB string) bool {
	keyA, errA := FolderName(dateA, fieldA)
	keyB, errB := FolderName(dateB, fieldB)
	if errA != nil || errB != nil {
		return false
	}
	return keyA == keyB && !(dateA == dateB && fieldA == fieldB)
}
