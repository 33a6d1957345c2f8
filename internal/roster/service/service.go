// Package service provides the business logic layer for the roster module.
package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/rizalarf/matchday/internal/proof"
	"github.com/rizalarf/matchday/internal/roster/model"
	"github.com/rizalarf/matchday/internal/roster/reconcile"
	"github.com/rizalarf/matchday/internal/roster/repository"
	"github.com/rizalarf/matchday/pkg/matchkey"
	"github.com/rizalarf/matchday/pkg/namelist"
)

// Service defines roster business operations.
type Service interface {
	// CreateMatch parses the pasted name list and creates the roster.
	CreateMatch(ctx context.Context, req *model.CreateMatchRequest) (*model.RosterResponse, error)

	// ReplaceMatch swaps a match's roster for a newly pasted name list.
	// Players kept on the list retain their stored status and timestamp;
	// new names start unpaid.
	ReplaceMatch(ctx context.Context, req *model.CreateMatchRequest) (*model.RosterResponse, error)

	// ListMatches returns summaries of all matches, newest date first.
	ListMatches(ctx context.Context) (*model.MatchListResponse, error)

	// GetRoster returns the reconciled roster of one match. FieldName may be
	// empty when the date has exactly one match (player deep links carry
	// only the date).
	GetRoster(ctx context.Context, date, fieldName string) (*model.RosterResponse, error)

	// UpdateStatus changes a player's stored status without a proof upload.
	UpdateStatus(ctx context.Context, req *model.UpdateStatusRequest) (*model.UpdateStatusResponse, error)

	// UploadProof stores a proof image and moves the record to Transfer,
	// locked, in one step.
	UploadProof(ctx context.Context, date, fieldName, playerName string, image []byte) (*model.UpdateStatusResponse, error)

	// ProofPath returns the on-disk path of a player's proof image.
	ProofPath(ctx context.Context, date, fieldName, playerName string) (string, error)

	// ArchiveProofs bundles the match's proof images into w as a zip.
	ArchiveProofs(ctx context.Context, date, fieldName string, w io.Writer) (int, error)

	// DeleteMatch removes the match's records and its proof folder.
	DeleteMatch(ctx context.Context, date, fieldName string) (*model.DeleteMatchResponse, error)
}

type service struct {
	repo    repository.Repository
	proofs  proof.Store
	logger  *zap.SugaredLogger
	lenient bool
}

// Option configures optional service behavior.
type Option func(*service)

// WithLenientLoad downgrades roster read failures to an empty result with a
// warning log, mirroring the legacy fail-soft behavior. Writes are never
// lenient.
func WithLenientLoad(lenient bool) Option {
	return func(s *service) { s.lenient = lenient }
}

// New creates a new roster service instance.
func New(repo repository.Repository, proofs proof.Store, logger *zap.SugaredLogger, opts ...Option) Service {
	s := &service{repo: repo, proofs: proofs, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMatch parses the pasted name list and creates the roster.
func (s *service) CreateMatch(ctx context.Context, req *model.CreateMatchRequest) (*model.RosterResponse, error) {
	names, err := namelist.Parse(req.Names)
	if err != nil {
		return nil, err
	}

	// The storage key must be resolvable up front; a venue name without a
	// single alphanumeric character could never store a proof image.
	if _, err := matchkey.FolderName(req.Date, req.FieldName); err != nil {
		return nil, err
	}

	if err := s.checkKeyCollision(ctx, req.Date, req.FieldName); err != nil {
		return nil, err
	}

	now := model.Now()
	records := make([]model.PlayerRecord, 0, len(names))
	for _, name := range names {
		records = append(records, model.PlayerRecord{
			Date:       req.Date,
			FieldName:  req.FieldName,
			PlayerName: name,
			Status:     model.StatusUnpaid,
			Timestamp:  now,
		})
	}

	if err := s.repo.CreateMatch(ctx, records); err != nil {
		s.logger.Errorw("CreateMatch failed", "date", req.Date, "field_name", req.FieldName, "error", err)
		return nil, err
	}

	s.logger.Infow("CreateMatch completed", "date", req.Date, "field_name", req.FieldName, "players", len(records))
	return s.buildRoster(req.Date, req.FieldName, records), nil
}

// ReplaceMatch swaps a match's roster for a newly pasted name list.
func (s *service) ReplaceMatch(ctx context.Context, req *model.CreateMatchRequest) (*model.RosterResponse, error) {
	names, err := namelist.Parse(req.Names)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByMatch(ctx, req.Date, req.FieldName)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, model.ErrMatchNotFound
	}
	kept := make(map[string]model.PlayerRecord, len(existing))
	for _, rec := range existing {
		kept[rec.PlayerName] = rec
	}

	now := model.Now()
	records := make([]model.PlayerRecord, 0, len(names))
	for _, name := range names {
		rec := model.PlayerRecord{
			Date:       req.Date,
			FieldName:  req.FieldName,
			PlayerName: name,
			Status:     model.StatusUnpaid,
			Timestamp:  now,
		}
		if prev, ok := kept[name]; ok {
			rec.Status = prev.Status
			rec.Timestamp = prev.Timestamp
		}
		records = append(records, rec)
	}

	if err := s.repo.ReplaceMatch(ctx, req.Date, req.FieldName, records); err != nil {
		s.logger.Errorw("ReplaceMatch failed", "date", req.Date, "field_name", req.FieldName, "error", err)
		return nil, err
	}

	s.logger.Infow("ReplaceMatch completed", "date", req.Date, "field_name", req.FieldName, "players", len(records))
	return s.buildRoster(req.Date, req.FieldName, records), nil
}

// checkKeyCollision rejects a new match whose sanitized storage key equals
// that of an existing, different match; their proof folders would merge.
// Identical (date, field) pairs are ErrMatchExists territory, not a
// collision, and Collides excludes them.
func (s *service) checkKeyCollision(ctx context.Context, date, fieldName string) error {
	existing, err := s.repo.ListMatches(ctx)
	if err != nil {
		return fmt.Errorf("list matches for collision check: %w", err)
	}
	for _, m := range existing {
		if matchkey.Collides(date, fieldName, m.Date, m.FieldName) {
			s.logger.Warnw("match key collision",
				"date", date, "field_name", fieldName,
				"existing_date", m.Date, "existing_field_name", m.FieldName)
			return model.ErrKeyCollision
		}
	}
	return nil
}

// ListMatches returns summaries of all matches, newest date first.
func (s *service) ListMatches(ctx context.Context) (*model.MatchListResponse, error) {
	matches, err := s.repo.ListMatches(ctx)
	if err != nil {
		if s.lenient {
			s.logger.Warnw("ListMatches failed, lenient mode returns empty", "error", err)
			return &model.MatchListResponse{Matches: []model.MatchSummary{}}, nil
		}
		return nil, err
	}

	summaries := make([]model.MatchSummary, 0, len(matches))
	for _, m := range matches {
		records, err := s.repo.ListByMatch(ctx, m.Date, m.FieldName)
		if err != nil {
			if s.lenient {
				s.logger.Warnw("ListMatches roster read failed, lenient mode skips match",
					"date", m.Date, "field_name", m.FieldName, "error", err)
				continue
			}
			return nil, err
		}

		paid := 0
		for _, rec := range records {
			res := reconcile.Effective(rec.Status, s.proofs.Exists(rec.Date, rec.FieldName, rec.PlayerName))
			if res.Paid() {
				paid++
			}
		}
		summaries = append(summaries, model.MatchSummary{
			Date:        m.Date,
			FieldName:   m.FieldName,
			PlayerCount: len(records),
			PaidCount:   paid,
			AllPaid:     len(records) > 0 && paid == len(records),
		})
	}

	return &model.MatchListResponse{Matches: summaries}, nil
}

// GetRoster returns the reconciled roster of one match.
func (s *service) GetRoster(ctx context.Context, date, fieldName string) (*model.RosterResponse, error) {
	if fieldName == "" {
		resolved, err := s.resolveFieldByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		fieldName = resolved
	}

	records, err := s.repo.ListByMatch(ctx, date, fieldName)
	if err != nil {
		if s.lenient {
			s.logger.Warnw("GetRoster failed, lenient mode returns empty roster",
				"date", date, "field_name", fieldName, "error", err)
			return s.buildRoster(date, fieldName, nil), nil
		}
		return nil, err
	}
	if len(records) == 0 {
		return nil, model.ErrMatchNotFound
	}

	return s.buildRoster(date, fieldName, records), nil
}

// resolveFieldByDate finds the single match on a date, for deep links that
// carry only the date. Several matches on one date need the field name.
func (s *service) resolveFieldByDate(ctx context.Context, date string) (string, error) {
	matches, err := s.repo.ListMatches(ctx)
	if err != nil {
		return "", err
	}

	var found []string
	for _, m := range matches {
		if m.Date == date {
			found = append(found, m.FieldName)
		}
	}
	switch len(found) {
	case 0:
		return "", model.ErrMatchNotFound
	case 1:
		return found[0], nil
	default:
		return "", model.ErrAmbiguousMatch
	}
}

// UpdateStatus changes a player's stored status without a proof upload.
func (s *service) UpdateStatus(ctx context.Context, req *model.UpdateStatusRequest) (*model.UpdateStatusResponse, error) {
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.GetPlayer(ctx, req.Date, req.FieldName, req.PlayerName)
	if err != nil {
		return nil, err
	}

	if reconcile.Effective(rec.Status, s.proofs.Exists(rec.Date, rec.FieldName, rec.PlayerName)).Locked() {
		s.logger.Infow("UpdateStatus rejected, record locked",
			"date", req.Date, "field_name", req.FieldName, "player_name", req.PlayerName)
		return nil, model.ErrRecordLocked
	}

	updated, err := s.repo.UpdateStatus(ctx, req.Date, req.FieldName, req.PlayerName, status, model.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Infow("UpdateStatus completed",
		"date", req.Date, "field_name", req.FieldName, "player_name", req.PlayerName, "status", status)
	return &model.UpdateStatusResponse{Entry: s.buildEntry(*updated)}, nil
}

// UploadProof stores a proof image and moves the record to Transfer, locked.
// The file is written before the status commit: a record must never claim
// Transfer with no backing proof.
func (s *service) UploadProof(ctx context.Context, date, fieldName, playerName string, image []byte) (*model.UpdateStatusResponse, error) {
	rec, err := s.repo.GetPlayer(ctx, date, fieldName, playerName)
	if err != nil {
		return nil, err
	}

	if reconcile.Effective(rec.Status, s.proofs.Exists(date, fieldName, playerName)).Locked() {
		return nil, model.ErrRecordLocked
	}

	if err := s.proofs.Save(date, fieldName, playerName, image); err != nil {
		s.logger.Errorw("UploadProof file write failed, status not committed",
			"date", date, "field_name", fieldName, "player_name", playerName, "error", err)
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, date, fieldName, playerName, model.StatusTransfer, model.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Infow("UploadProof completed",
		"date", date, "field_name", fieldName, "player_name", playerName)
	return &model.UpdateStatusResponse{Entry: s.buildEntry(*updated)}, nil
}

// ProofPath returns the on-disk path of a player's proof image.
func (s *service) ProofPath(ctx context.Context, date, fieldName, playerName string) (string, error) {
	if _, err := s.repo.GetPlayer(ctx, date, fieldName, playerName); err != nil {
		return "", err
	}
	path, err := s.proofs.Path(date, fieldName, playerName)
	if err != nil {
		if os.IsNotExist(err) {
			return "", model.ErrProofNotFound
		}
		return "", err
	}
	return path, nil
}

// ArchiveProofs bundles the match's proof images into w as a zip.
func (s *service) ArchiveProofs(ctx context.Context, date, fieldName string, w io.Writer) (int, error) {
	records, err := s.repo.ListByMatch(ctx, date, fieldName)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, model.ErrMatchNotFound
	}
	return s.proofs.Archive(date, fieldName, w)
}

// DeleteMatch removes the match's records and cascades into its proof folder.
func (s *service) DeleteMatch(ctx context.Context, date, fieldName string) (*model.DeleteMatchResponse, error) {
	deleted, err := s.repo.DeleteMatch(ctx, date, fieldName)
	if err != nil {
		return nil, err
	}

	if err := s.proofs.DeleteMatch(date, fieldName); err != nil {
		// Rows are gone but proof images linger; surface it so the admin
		// can retry instead of discovering orphans later.
		s.logger.Errorw("DeleteMatch proof folder cleanup failed",
			"date", date, "field_name", fieldName, "error", err)
		return nil, fmt.Errorf("match rows deleted but proof cleanup failed: %w", err)
	}

	s.logger.Infow("DeleteMatch completed", "date", date, "field_name", fieldName, "records", deleted)
	return &model.DeleteMatchResponse{
		Date:           date,
		FieldName:      fieldName,
		RecordsDeleted: deleted,
	}, nil
}

// buildRoster assembles the reconciled roster response.
func (s *service) buildRoster(date, fieldName string, records []model.PlayerRecord) *model.RosterResponse {
	entries := make([]model.RosterEntry, 0, len(records))
	allPaid := len(records) > 0
	for _, rec := range records {
		entry := s.buildEntry(rec)
		if !entry.Paid {
			allPaid = false
		}
		entries = append(entries, entry)
	}
	return &model.RosterResponse{
		Date:      date,
		FieldName: fieldName,
		AllPaid:   allPaid,
		ShareLink: "?view=player&date=" + url.QueryEscape(date),
		Entries:   entries,
	}
}

// buildEntry reconciles one record with proof presence.
func (s *service) buildEntry(rec model.PlayerRecord) model.RosterEntry {
	hasProof := s.proofs.Exists(rec.Date, rec.FieldName, rec.PlayerName)
	res := reconcile.Effective(rec.Status, hasProof)

	entry := model.RosterEntry{
		PlayerName:      rec.PlayerName,
		Status:          rec.Status,
		EffectiveStatus: res.Status,
		Editable:        res.Editable,
		Paid:            res.Paid(),
		HasProof:        hasProof,
		Timestamp:       rec.Timestamp,
	}
	if hasProof {
		entry.ProofURL = fmt.Sprintf("/payments/proof?date=%s&field=%s&player=%s",
			url.QueryEscape(rec.Date), url.QueryEscape(rec.FieldName), url.QueryEscape(rec.PlayerName))
	}
	return entry
}
