package model

// CreateMatchRequest creates a match roster from a pasted name list.
// Names is raw text, one player per line, ordinals allowed ("1. Ann").
type CreateMatchRequest struct {
	Date      string `json:"date"       binding:"required"`
	FieldName string `json:"field_name" binding:"required"`
	Names     string `json:"names"      binding:"required"`
}

// UpdateStatusRequest reports a payment without a proof upload.
type UpdateStatusRequest struct {
	Date       string `json:"date"        binding:"required"`
	FieldName  string `json:"field_name"  binding:"required"`
	PlayerName string `json:"player_name" binding:"required"`
	Status     string `json:"status"      binding:"required"`
}

// RosterEntry is one player row as presented to the UI: the stored status
// reconciled with proof-file presence.
type RosterEntry struct {
	PlayerName      string `json:"player_name"`
	Status          Status `json:"status"`
	EffectiveStatus Status `json:"effective_status"`
	Editable        bool   `json:"editable"`
	Paid            bool   `json:"paid"`
	HasProof        bool   `json:"has_proof"`
	ProofURL        string `json:"proof_url,omitempty"`
	Timestamp       string `json:"timestamp,omitempty"`
}

// RosterResponse is the full roster of one match.
type RosterResponse struct {
	Date      string        `json:"date"`
	FieldName string        `json:"field_name"`
	AllPaid   bool          `json:"all_paid"`
	ShareLink string        `json:"share_link"`
	Entries   []RosterEntry `json:"entries"`
}

// MatchSummary is one match in the admin match list.
type MatchSummary struct {
	Date        string `json:"date"`
	FieldName   string `json:"field_name"`
	PlayerCount int    `json:"player_count"`
	PaidCount   int    `json:"paid_count"`
	AllPaid     bool   `json:"all_paid"`
}

// MatchListResponse lists matches, newest date first.
type MatchListResponse struct {
	Matches []MatchSummary `json:"matches"`
}

// UpdateStatusResponse returns the reconciled row after a status change.
type UpdateStatusResponse struct {
	Entry RosterEntry `json:"entry"`
}

// DeleteMatchResponse reports what a match deletion removed.
type DeleteMatchResponse struct {
	Date           string `json:"date"`
	FieldName      string `json:"field_name"`
	RecordsDeleted int    `json:"records_deleted"`
}
