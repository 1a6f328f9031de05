package model

// MetaRowID is the fixed primary key of the MetricsMeta singleton row.
const MetaRowID = 1

// Metric holds the visit counters for a single request path.
type Metric struct {
	Path    string `gorm:"primaryKey;size:1024"`
	Daily   int64  `gorm:"not null"`
	Weekly  int64  `gorm:"not null"`
	Monthly int64  `gorm:"not null"`
	Yearly  int64  `gorm:"not null"`
	Total   int64  `gorm:"not null"`
}

// MetricsMeta is the single-row table remembering which day, week, month
// and year the period counters currently belong to.
type MetricsMeta struct {
	ID    int    `gorm:"primaryKey"`
	Today string `gorm:"size:32;not null"`
	Week  string `gorm:"size:32;not null"`
	Month string `gorm:"size:32;not null"`
	Year  string `gorm:"size:32;not null"`
}

// TableName keeps the historical table name.
func (MetricsMeta) TableName() string { return "metrics_meta" }
