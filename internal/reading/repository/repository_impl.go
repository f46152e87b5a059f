package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() readingdomain.Repository {
	return &repo{}
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, reading *readingdomain.Reading) error {
	// clause.OnConflict renders the correct upsert per dialect.
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"counter", "captured_at"}),
	}).Create(reading).Error
}

func (r *repo) ListUpTo(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, to day.Date) ([]readingdomain.Reading, error) {
	var readings []readingdomain.Reading
	err := db.WithContext(ctx).Raw(
		`SELECT device_id, date, counter, captured_at
		 FROM readings WHERE device_id = ? AND date <= ?
		 ORDER BY date ASC`,
		deviceID,
		to,
	).Scan(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) ListRange(ctx context.Context, db *gorm.DB, deviceID snowflake.ID, from, to day.Date) ([]readingdomain.Reading, error) {
	var readings []readingdomain.Reading
	err := db.WithContext(ctx).Raw(
		`SELECT device_id, date, counter, captured_at
		 FROM readings WHERE device_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC`,
		deviceID,
		from,
		to,
	).Scan(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) NearestDateBefore(ctx context.Context, db *gorm.DB, date day.Date, lookbackDays int) (day.Date, error) {
	if lookbackDays <= 0 {
		return "", nil
	}
	floor := date.AddDays(-lookbackDays)
	var row struct {
		Date day.Date `gorm:"column:date"`
	}
	err := db.WithContext(ctx).Raw(
		`SELECT date FROM readings
		 WHERE date < ? AND date >= ?
		 ORDER BY date DESC LIMIT 1`,
		date,
		floor,
	).Scan(&row).Error
	if err != nil {
		return "", err
	}
	return row.Date, nil
}

func (r *repo) DeleteByDevice(ctx context.Context, db *gorm.DB, deviceID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM readings WHERE device_id = ?`,
		deviceID,
	).Error
}
