package store

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"status-backend/internal/model"
)

// PluginData returns the document stored under id, creating an empty one on
// first access so plugins never have to special-case their first run.
func (s *gormStore) PluginData(ctx context.Context, id string) (map[string]any, error) {
	var p model.Plugin
	err := s.db.WithContext(ctx).Take(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = model.Plugin{ID: id, Data: datatypes.JSONMap{}}
		if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, storageErr("create plugin data", err)
		}
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, storageErr("read plugin data", err)
	}
	if p.Data == nil {
		return map[string]any{}, nil
	}
	return map[string]any(p.Data), nil
}

// SetPluginData replaces the stored document wholesale. There is no merge;
// plugins own their document format.
func (s *gormStore) SetPluginData(ctx context.Context, id string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Plugin
		err := tx.Take(&p, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p = model.Plugin{ID: id, Data: datatypes.JSONMap(data)}
			return tx.Create(&p).Error
		}
		if err != nil {
			return err
		}
		p.Data = datatypes.JSONMap(data)
		return tx.Save(&p).Error
	})
	if err != nil {
		return storageErr("set plugin data", err)
	}
	return nil
}
