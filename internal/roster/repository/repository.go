// Package repository provides the data access layer for roster records.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rizalarf/matchday/internal/roster/model"
)

// Repository defines roster data access operations. All date comparisons
// are text comparisons on the stored string, never typed-date comparisons.
type Repository interface {
	// List returns the full roster table in insertion order.
	List(ctx context.Context) ([]model.PlayerRecord, error)

	// ListByMatch returns all records of one (date, field) match.
	ListByMatch(ctx context.Context, date, fieldName string) ([]model.PlayerRecord, error)

	// ListMatches returns one representative record per distinct match,
	// newest date first.
	ListMatches(ctx context.Context) ([]model.PlayerRecord, error)

	// GetPlayer returns a single record by its natural key.
	GetPlayer(ctx context.Context, date, fieldName, playerName string) (*model.PlayerRecord, error)

	// CreateMatch appends the records of a new match. Fails with
	// model.ErrMatchExists if the (date, field) pair already has rows and
	// model.ErrDuplicatePlayer on duplicate names in the input.
	CreateMatch(ctx context.Context, records []model.PlayerRecord) error

	// ReplaceMatch atomically swaps all records of one match for new ones.
	// Records of other matches are untouched.
	ReplaceMatch(ctx context.Context, date, fieldName string, records []model.PlayerRecord) error

	// UpdateStatus sets status and timestamp on one record. Fails with
	// model.ErrPlayerNotFound when the record does not exist.
	UpdateStatus(ctx context.Context, date, fieldName, playerName string, status model.Status, timestamp string) (*model.PlayerRecord, error)

	// DeleteMatch removes all records of one match and returns how many
	// rows were deleted. Fails with model.ErrMatchNotFound when none exist.
	DeleteMatch(ctx context.Context, date, fieldName string) (int, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new roster repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// List returns the full roster table in insertion order.
func (r *repository) List(ctx context.Context) ([]model.PlayerRecord, error) {
	var records []model.PlayerRecord
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}
	return records, nil
}

// ListByMatch returns all records of one match in insertion order.
func (r *repository) ListByMatch(ctx context.Context, date, fieldName string) ([]model.PlayerRecord, error) {
	var records []model.PlayerRecord
	err := r.db.WithContext(ctx).
		Where("date = ? AND field_name = ?", date, fieldName).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		r.logger.Errorw("ListByMatch database error", "date", date, "field_name", fieldName, "error", err)
		return nil, err
	}
	return records, nil
}

// ListMatches returns the first record of every distinct match, newest
// date first. Text ordering on ISO-style dates matches chronological order.
func (r *repository) ListMatches(ctx context.Context) ([]model.PlayerRecord, error) {
	var records []model.PlayerRecord
	err := r.db.WithContext(ctx).
		Select("MIN(id) AS id, date, field_name").
		Group("date").Group("field_name").
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		r.logger.Errorw("ListMatches database error", "error", err)
		return nil, err
	}
	return records, nil
}

// GetPlayer returns one record by its natural key.
func (r *repository) GetPlayer(ctx context.Context, date, fieldName, playerName string) (*model.PlayerRecord, error) {
	var record model.PlayerRecord
	err := r.db.WithContext(ctx).
		Where("date = ? AND field_name = ? AND player_name = ?", date, fieldName, playerName).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		r.logger.Errorw("GetPlayer database error",
			"date", date, "field_name", fieldName, "player_name", playerName, "error", err)
		return nil, err
	}
	return &record, nil
}

// CreateMatch appends the records of a new match inside one transaction.
func (r *repository) CreateMatch(ctx context.Context, records []model.PlayerRecord) error {
	if len(records) == 0 {
		return model.ErrMatchNotFound
	}
	date, fieldName := records[0].Date, records[0].FieldName

	if err := checkDuplicates(records); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PlayerRecord{}).
			Where("date = ? AND field_name = ?", date, fieldName).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return model.ErrMatchExists
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		if errors.Is(err, model.ErrMatchExists) {
			return err
		}
		r.logger.Errorw("CreateMatch database error", "date", date, "field_name", fieldName, "error", err)
		return err
	}

	r.logger.Infow("match created", "date", date, "field_name", fieldName, "players", len(records))
	return nil
}

// ReplaceMatch swaps all records of one match for new ones atomically.
func (r *repository) ReplaceMatch(ctx context.Context, date, fieldName string, records []model.PlayerRecord) error {
	if err := checkDuplicates(records); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("date = ? AND field_name = ?", date, fieldName).
			Delete(&model.PlayerRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		r.logger.Errorw("ReplaceMatch database error", "date", date, "field_name", fieldName, "error", err)
		return err
	}

	r.logger.Infow("match replaced", "date", date, "field_name", fieldName, "players", len(records))
	return nil
}

// UpdateStatus sets status and timestamp on one record by natural key.
func (r *repository) UpdateStatus(ctx context.Context, date, fieldName, playerName string, status model.Status, timestamp string) (*model.PlayerRecord, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PlayerRecord{}).
		Where("date = ? AND field_name = ? AND player_name = ?", date, fieldName, playerName).
		Updates(map[string]interface{}{
			"status":    status,
			"timestamp": timestamp,
		})
	if result.Error != nil {
		r.logger.Errorw("UpdateStatus database error",
			"date", date, "field_name", fieldName, "player_name", playerName, "error", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrPlayerNotFound
	}

	return r.GetPlayer(ctx, date, fieldName, playerName)
}

// DeleteMatch removes all records of one match.
func (r *repository) DeleteMatch(ctx context.Context, date, fieldName string) (int, error) {
	result := r.db.WithContext(ctx).
		Where("date = ? AND field_name = ?", date, fieldName).
		Delete(&model.PlayerRecord{})
	if result.Error != nil {
		r.logger.Errorw("DeleteMatch database error", "date", date, "field_name", fieldName, "error", result.Error)
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, model.ErrMatchNotFound
	}

	r.logger.Infow("match deleted", "date", date, "field_name", fieldName, "records", result.RowsAffected)
	return int(result.RowsAffected), nil
}

// checkDuplicates rejects rosters that name the same player twice. Status
// updates address players by name, so duplicates would be unaddressable.
func checkDuplicates(records []model.PlayerRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		key := strings.ToLower(rec.PlayerName)
		if _, ok := seen[key]; ok {
			return model.ErrDuplicatePlayer
		}
		seen[key] = struct{}{}
	}
	return nil
}
