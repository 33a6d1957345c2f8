package model

import (
	"time"

	"gorm.io/gorm"
)

// TimestampLayout is the text format of the last-modified marker.
const TimestampLayout = "2006-01-02 15:04:05"

// PlayerRecord is one roster row: a player's payment state for one match.
// (Date, FieldName) identifies the match; (Date, FieldName, PlayerName)
// identifies the record. Date is stored and compared as text, never as a
// typed date, because the same string is embedded in proof storage keys.
type PlayerRecord struct {
	ID         uint      `gorm:"primaryKey;column:id;autoIncrement"                                                      json:"-"`
	Date       string    `gorm:"column:date;type:varchar(32);not null;index:idx_player_records_match,priority:1"         json:"date"`
	FieldName  string    `gorm:"column:field_name;type:varchar(255);not null;index:idx_player_records_match,priority:2"  json:"field_name"`
	PlayerName string    `gorm:"column:player_name;type:varchar(255);not null"                                           json:"player_name"`
	Status     Status    `gorm:"column:status;type:varchar(16);not null;default:UNPAID"                                  json:"status"`
	Timestamp  string    `gorm:"column:timestamp;type:varchar(32);not null;default:''"                                   json:"timestamp"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"                               json:"-"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                               json:"-"`
}

// TableName specifies the table name for GORM.
func (PlayerRecord) TableName() string {
	return "player_records"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (r *PlayerRecord) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// Now returns the current time in the roster's text timestamp format.
func Now() string {
	return time.Now().Format(TimestampLayout)
}
