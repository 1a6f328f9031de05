package model

import "time"

// StateRowID is the fixed primary key of the StatusState singleton row.
const StateRowID = 1

// StatusState is the single-row table holding the global presence state.
type StatusState struct {
	ID          int       `gorm:"primaryKey"`
	Status      int       `gorm:"not null"`
	Private     bool      `gorm:"not null"`
	LastUpdated time.Time `gorm:"not null"`
}
