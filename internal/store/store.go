package store

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Store defines the interface for all database operations.
type Store interface {
	// Global state
	StatusID(ctx context.Context) (int, error)
	SetStatusID(ctx context.Context, id int) error
	PrivateMode(ctx context.Context) (bool, error)
	SetPrivateMode(ctx context.Context, on bool) error
	LastUpdated(ctx context.Context) (time.Time, error)
	SetLastUpdated(ctx context.Context, t time.Time) error
	Catalog() []StatusInfo
	ResolveStatus(id int) StatusInfo
	CurrentStatus(ctx context.Context) (StatusInfo, error)

	// Devices
	UpsertDevice(ctx context.Context, up DeviceUpdate) error
	Device(ctx context.Context, id string) (map[string]any, error)
	RemoveDevice(ctx context.Context, id string) error
	ClearDevices(ctx context.Context) error
	DeviceView(ctx context.Context) (*DeviceView, error)

	// Metrics
	RecordMetric(ctx context.Context, path string, count int64, override bool) error
	MetricsSnapshot(ctx context.Context) (MetricsSnapshot, error)
	IndexMetrics(ctx context.Context) (MetricCounters, error)
	RolloverMetrics(ctx context.Context, now time.Time) error

	// Plugin documents
	PluginData(ctx context.Context, id string) (map[string]any, error)
	SetPluginData(ctx context.Context, id string, data map[string]any) error
}

// Options carries the immutable configuration the store consults at runtime.
type Options struct {
	Catalog   []StatusInfo // ordered status catalog
	View      ViewPolicy
	AllowList []string // paths whose visits are counted
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db      *gorm.DB
	catalog []StatusInfo
	view    ViewPolicy
	allowed map[string]struct{}
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, opts Options) Store {
	allowed := make(map[string]struct{}, len(opts.AllowList))
	for _, p := range opts.AllowList {
		allowed[p] = struct{}{}
	}
	return &gormStore{
		db:      db,
		catalog: opts.Catalog,
		view:    opts.View,
		allowed: allowed,
	}
}
