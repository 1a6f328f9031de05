package store

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"status-backend/internal/model"
)

// UpsertDevice creates or updates one device from a report. Provided fields
// overwrite the stored ones, except Fields, which is deep-merged into the
// existing mapping. The device write and the freshness touch are separate
// commits.
func (s *gormStore) UpsertDevice(ctx context.Context, up DeviceUpdate) error {
	if up.ID == "" {
		return &ValidationError{Reason: "device id cannot be empty!"}
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dev model.Device
		created := false
		err := tx.Take(&dev, "id = ?", up.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if up.ShowName == nil || *up.ShowName == "" {
				return &ValidationError{Reason: "device show_name cannot be empty!"}
			}
			dev = model.Device{ID: up.ID, Fields: datatypes.JSONMap{}}
			created = true
		case err != nil:
			return err
		}

		if up.ShowName != nil {
			dev.ShowName = *up.ShowName
		}
		if up.Using != nil {
			dev.Using = up.Using
		}
		if up.Status != nil {
			dev.Status = *up.Status
		}
		if len(up.Fields) > 0 {
			merged := mergeFields(map[string]any(dev.Fields), up.Fields)
			dev.Fields = datatypes.JSONMap(merged)
		}
		if dev.Fields == nil {
			dev.Fields = datatypes.JSONMap{}
		}

		if created {
			return tx.Create(&dev).Error
		}
		return tx.Save(&dev).Error
	})
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		return storageErr("upsert device", err)
	}
	return s.touch(ctx)
}

// Device returns the flattened record for one device id.
func (s *gormStore) Device(ctx context.Context, id string) (map[string]any, error) {
	var dev model.Device
	err := s.db.WithContext(ctx).Take(&dev, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("read device", err)
	}
	return deviceAttrs(dev, dev.Status), nil
}

// RemoveDevice deletes one device. Removing an absent id is a no-op and
// does not move the freshness stamp.
func (s *gormStore) RemoveDevice(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Device{}, "id = ?", id)
	if res.Error != nil {
		return storageErr("remove device", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return s.touch(ctx)
}

// ClearDevices deletes every device.
func (s *gormStore) ClearDevices(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&model.Device{}).Error; err != nil {
		return storageErr("clear devices", err)
	}
	return s.touch(ctx)
}

// DeviceView assembles the externally visible device listing. Private mode
// yields an empty view without reading the device table.
func (s *gormStore) DeviceView(ctx context.Context) (*DeviceView, error) {
	private, err := s.PrivateMode(ctx)
	if err != nil {
		return nil, err
	}
	if private {
		return newDeviceView(0), nil
	}
	var devices []model.Device
	if err := s.db.WithContext(ctx).Find(&devices).Error; err != nil {
		return nil, storageErr("list devices", err)
	}
	return assembleView(devices, s.view), nil
}
