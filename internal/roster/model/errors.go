package model

import "errors"

var (
	// ErrMatchNotFound indicates no records exist for the requested match.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchExists indicates a match with the same (date, field) already exists.
	ErrMatchExists = errors.New("match already exists")
	// ErrPlayerNotFound indicates the player has no record under the match.
	ErrPlayerNotFound = errors.New("player not found in match")
	// ErrDuplicatePlayer indicates the same name appears twice in one match.
	ErrDuplicatePlayer = errors.New("duplicate player name in match")
	// ErrInvalidStatus indicates an unknown payment status value.
	ErrInvalidStatus = errors.New("invalid payment status")
	// ErrRecordLocked indicates the record has an uploaded proof and can no
	// longer be edited.
	ErrRecordLocked = errors.New("record is locked by uploaded proof")
	// ErrKeyCollision indicates a new match sanitizes to the same storage key
	// as an existing, different match.
	ErrKeyCollision = errors.New("match key collides with an existing match")
	// ErrAmbiguousMatch indicates a date-only lookup matched several matches.
	ErrAmbiguousMatch = errors.New("multiple matches on this date, field name required")
	// ErrProofNotFound indicates no proof image is stored for the player.
	ErrProofNotFound = errors.New("proof image not found")
)
