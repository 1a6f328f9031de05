package model

import (
	"time"

	"gorm.io/datatypes"
)

// Device represents one reporting device and its last known state.
type Device struct {
	ID       string            `gorm:"primaryKey;size:1024"`
	ShowName string            `gorm:"size:1024;not null"`
	Using    *bool             // nil when the reporter does not know
	Status   string            `gorm:"size:1024"`
	Fields   datatypes.JSONMap `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time // last report from this device
}
