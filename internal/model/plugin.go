package model

import (
	"time"

	"gorm.io/datatypes"
)

// Plugin is an opaque JSON document owned by one plugin.
type Plugin struct {
	ID   string            `gorm:"primaryKey;size:1024"`
	Data datatypes.JSONMap `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
