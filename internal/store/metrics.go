package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"status-backend/internal/model"
)

// RecordMetric counts a visit to path. Paths outside the allow-list are
// ignored. With override the counters are replaced by count instead of
// incremented.
func (s *gormStore) RecordMetric(ctx context.Context, path string, count int64, override bool) error {
	if _, ok := s.allowed[path]; !ok {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Metric
		created := false
		err := tx.Take(&m, "path = ?", path).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			m = model.Metric{Path: path}
			created = true
		case err != nil:
			return err
		}
		if override {
			m.Daily, m.Weekly, m.Monthly, m.Yearly, m.Total = count, count, count, count, count
		} else {
			m.Daily += count
			m.Weekly += count
			m.Monthly += count
			m.Yearly += count
			m.Total += count
		}
		if created {
			return tx.Create(&m).Error
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		return storageErr("record metric", err)
	}
	return nil
}

// MetricsSnapshot returns the counters of every tracked path grouped by
// period.
func (s *gormStore) MetricsSnapshot(ctx context.Context) (MetricsSnapshot, error) {
	var rows []model.Metric
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return MetricsSnapshot{}, storageErr("read metrics", err)
	}
	snap := MetricsSnapshot{
		Daily:   make(map[string]int64, len(rows)),
		Weekly:  make(map[string]int64, len(rows)),
		Monthly: make(map[string]int64, len(rows)),
		Yearly:  make(map[string]int64, len(rows)),
		Total:   make(map[string]int64, len(rows)),
	}
	for _, m := range rows {
		snap.Daily[m.Path] = m.Daily
		snap.Weekly[m.Path] = m.Weekly
		snap.Monthly[m.Path] = m.Monthly
		snap.Yearly[m.Path] = m.Yearly
		snap.Total[m.Path] = m.Total
	}
	return snap, nil
}

// IndexMetrics returns the counters of the root path, all zero when the
// path has never been visited.
func (s *gormStore) IndexMetrics(ctx context.Context) (MetricCounters, error) {
	var m model.Metric
	err := s.db.WithContext(ctx).Take(&m, "path = ?", "/").Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return MetricCounters{}, nil
	}
	if err != nil {
		return MetricCounters{}, storageErr("read index metric", err)
	}
	return MetricCounters{
		Daily:   m.Daily,
		Weekly:  m.Weekly,
		Monthly: m.Monthly,
		Yearly:  m.Yearly,
		Total:   m.Total,
	}, nil
}

// periodKeys renders the rollover marker strings for now. Keys use unpadded
// numbers, and the week key pairs the calendar year with the ISO week
// number, matching the stored marker format.
func periodKeys(now time.Time) (day, week, month, year string) {
	_, isoWeek := now.ISOWeek()
	year = fmt.Sprintf("%d", now.Year())
	month = fmt.Sprintf("%d-%d", now.Year(), int(now.Month()))
	day = fmt.Sprintf("%d-%d-%d", now.Year(), int(now.Month()), now.Day())
	week = fmt.Sprintf("%d-%d", now.Year(), isoWeek)
	return day, week, month, year
}

// RolloverMetrics zeroes each period counter whose key no longer matches
// the stored marker. The four comparisons are independent, so a pass can
// roll the year without rolling the week. Re-running within the same day
// changes nothing, which makes the eager startup invocation safe.
//
// The whole pass runs in one transaction. Concurrent RecordMetric calls
// either serialize against it or, on postgres, can overwrite a fresh zero
// with a stale increment; losing a few boundary visits is accepted.
func (s *gormStore) RolloverMetrics(ctx context.Context, now time.Time) error {
	day, week, month, year := periodKeys(now)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meta model.MetricsMeta
		if err := tx.Take(&meta, "id = ?", model.MetaRowID).Error; err != nil {
			return err
		}

		zero := func(column string) error {
			return tx.Model(&model.Metric{}).Where("1 = 1").Update(column, 0).Error
		}

		if meta.Today != day {
			log.Printf("[metrics] day changed: %s -> %s", meta.Today, day)
			if err := zero("daily"); err != nil {
				return err
			}
			meta.Today = day
		}
		if meta.Week != week {
			log.Printf("[metrics] week changed: %s -> %s", meta.Week, week)
			if err := zero("weekly"); err != nil {
				return err
			}
			meta.Week = week
		}
		if meta.Month != month {
			log.Printf("[metrics] month changed: %s -> %s", meta.Month, month)
			if err := zero("monthly"); err != nil {
				return err
			}
			meta.Month = month
		}
		if meta.Year != year {
			log.Printf("[metrics] year changed: %s -> %s", meta.Year, year)
			if err := zero("yearly"); err != nil {
				return err
			}
			meta.Year = year
		}
		return tx.Save(&meta).Error
	})
	if err != nil {
		return storageErr("rollover metrics", err)
	}
	return nil
}
