package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
	wastedomain "github.com/copystack/printledger/internal/waste/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() wastedomain.Repository {
	return &repo{}
}

func (r *repo) InsertEntry(ctx context.Context, db *gorm.DB, e *wastedomain.WasteEntry) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO waste_entries (id, device_id, date, count, note, operator, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.DeviceID,
		e.Date,
		e.Count,
		e.Note,
		e.Operator,
		e.CreatedAt,
	).Error
}

func (r *repo) DeleteEntry(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM waste_entries WHERE id = ?`,
		id,
	).Error
}

func (r *repo) FindEntry(ctx context.Context, db *gorm.DB, id snowflake.ID) (*wastedomain.WasteEntry, error) {
	var entry wastedomain.WasteEntry
	err := db.WithContext(ctx).Raw(
		`SELECT id, device_id, date, count, note, operator, created_at
		 FROM waste_entries WHERE id = ?`,
		id,
	).Scan(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		return nil, nil
	}
	return &entry, nil
}

func (r *repo) ListEntries(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, date day.Date) ([]wastedomain.WasteEntry, error) {
	var entries []wastedomain.WasteEntry
	err := db.WithContext(ctx).Raw(
		`SELECT id, device_id, date, count, note, operator, created_at
		 FROM waste_entries WHERE device_id = ? AND date = ?
		 ORDER BY created_at ASC`,
		deviceID,
		date,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) RecomputeSummary(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, date day.Date) error {
	var row struct {
		Total int64 `gorm:"column:total"`
	}
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(count), 0) AS total
		 FROM waste_entries WHERE device_id = ? AND date = ?`,
		deviceID,
		date,
	).Scan(&row).Error
	if err != nil {
		return err
	}

	if row.Total == 0 {
		return db.WithContext(ctx).Exec(
			`DELETE FROM waste_summaries WHERE device_id = ? AND date = ?`,
			deviceID,
			date,
		).Error
	}

	summary := &wastedomain.WasteSummary{DeviceID: deviceID, Date: date, Total: row.Total}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"total"}),
	}).Create(summary).Error
}

func (r *repo) FindSummary(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, date day.Date) (*wastedomain.WasteSummary, error) {
	var summary wastedomain.WasteSummary
	err := db.WithContext(ctx).Raw(
		`SELECT device_id, date, total
		 FROM waste_summaries WHERE device_id = ? AND date = ?`,
		deviceID,
		date,
	).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	if summary.DeviceID == 0 {
		return nil, nil
	}
	return &summary, nil
}

func (r *repo) ListSummariesRange(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, from, to day.Date) ([]wastedomain.WasteSummary, error) {
	var summaries []wastedomain.WasteSummary
	err := db.WithContext(ctx).Raw(
		`SELECT device_id, date, total
		 FROM waste_summaries WHERE device_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC`,
		deviceID,
		from,
		to,
	).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *repo) DeleteByDevice(ctx context.Context, db *gorm.DB, deviceID snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(
		`DELETE FROM waste_entries WHERE device_id = ?`,
		deviceID,
	).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Exec(
		`DELETE FROM waste_summaries WHERE device_id = ?`,
		deviceID,
	).Error
}
