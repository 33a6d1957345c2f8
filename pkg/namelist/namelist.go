// Package namelist parses pasted player name lists into clean name slices.
//
// Input typically comes straight out of a group chat, one player per line
// with optional ordinal prefixes ("1. Budi"). Digits and periods are
// stripped everywhere, so a name that legitimately contains a period loses
// it; this is a documented limitation, not something to fix silently.
package namelist

import (
	"errors"
	"strings"
)

// ErrEmptyList indicates no usable names survived parsing.
var ErrEmptyList = errors.New("name list is empty")

// Parse splits raw text into player names, one per line. Digits and '.'
// characters are removed, surrounding whitespace trimmed, blank results
// dropped. Order is preserved and duplicates are passed through untouched;
// duplicate detection is the roster store's job at creation time.
func Parse(raw string) ([]string, error) {
	var names []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var b strings.Builder
		for _, c := range line {
			if c >= '0' && c <= '9' || c == '.' {
				continue
			}
			b.WriteRune(c)
		}
		name := strings.TrimSpace(b.String())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, ErrEmptyList
	}
	return names, nil
}
