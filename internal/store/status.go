package store

import (
	"context"
	"time"

	"status-backend/internal/model"
)

func (s *gormStore) loadState(ctx context.Context) (model.StatusState, error) {
	var st model.StatusState
	err := s.db.WithContext(ctx).Take(&st, "id = ?", model.StateRowID).Error
	return st, err
}

// updateState writes the given columns of the singleton row. Every write to
// the row also refreshes last_updated, so status and private-mode changes
// move the freshness stamp consumers poll.
func (s *gormStore) updateState(ctx context.Context, values map[string]any) error {
	if _, ok := values["last_updated"]; !ok {
		values["last_updated"] = time.Now()
	}
	return s.db.WithContext(ctx).Model(&model.StatusState{}).
		Where("id = ?", model.StateRowID).
		Updates(values).Error
}

// StatusID returns the current global status id.
func (s *gormStore) StatusID(ctx context.Context) (int, error) {
	st, err := s.loadState(ctx)
	if err != nil {
		return 0, storageErr("read status", err)
	}
	return st.Status, nil
}

// SetStatusID stores a new global status id. The id is not checked against
// the catalog; unknown ids resolve to the fallback entry on read.
func (s *gormStore) SetStatusID(ctx context.Context, id int) error {
	if err := s.updateState(ctx, map[string]any{"status": id}); err != nil {
		return storageErr("set status", err)
	}
	return nil
}

// PrivateMode reports whether the device view is hidden.
func (s *gormStore) PrivateMode(ctx context.Context) (bool, error) {
	st, err := s.loadState(ctx)
	if err != nil {
		return false, storageErr("read private mode", err)
	}
	return st.Private, nil
}

// SetPrivateMode toggles hiding of the device view.
func (s *gormStore) SetPrivateMode(ctx context.Context, on bool) error {
	if err := s.updateState(ctx, map[string]any{"private": on}); err != nil {
		return storageErr("set private mode", err)
	}
	return nil
}

// LastUpdated returns the freshness stamp of the externally visible state.
func (s *gormStore) LastUpdated(ctx context.Context) (time.Time, error) {
	st, err := s.loadState(ctx)
	if err != nil {
		return time.Time{}, storageErr("read last updated", err)
	}
	return st.LastUpdated, nil
}

// SetLastUpdated overwrites the freshness stamp.
func (s *gormStore) SetLastUpdated(ctx context.Context, t time.Time) error {
	if err := s.updateState(ctx, map[string]any{"last_updated": t}); err != nil {
		return storageErr("set last updated", err)
	}
	return nil
}

// touch refreshes the freshness stamp after a device mutation. It is a
// separate commit from the mutation itself, so a concurrent reader may
// briefly see the new device state with the old stamp.
func (s *gormStore) touch(ctx context.Context) error {
	return s.SetLastUpdated(ctx, time.Now())
}

// Catalog returns the configured status catalog in order.
func (s *gormStore) Catalog() []StatusInfo {
	return append([]StatusInfo(nil), s.catalog...)
}

// ResolveStatus looks id up in the configured status catalog by position.
// Ids outside the catalog resolve to a synthesized fallback entry rather
// than failing.
func (s *gormStore) ResolveStatus(id int) StatusInfo {
	if id >= 0 && id < len(s.catalog) {
		return s.catalog[id]
	}
	return StatusInfo{
		ID:    id,
		Name:  "Unknown",
		Desc:  "未知的标识符，可能是配置问题。",
		Color: "error",
	}
}

// CurrentStatus resolves the stored status id against the catalog.
func (s *gormStore) CurrentStatus(ctx context.Context) (StatusInfo, error) {
	id, err := s.StatusID(ctx)
	if err != nil {
		return StatusInfo{}, err
	}
	return s.ResolveStatus(id), nil
}
