package models

import "time"

// Base contains common columns for all tables. Rows are hard-deleted:
// the cascade contract between categories and expenses requires deleted
// data to actually disappear from sums.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
