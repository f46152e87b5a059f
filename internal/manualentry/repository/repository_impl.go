package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
	manualdomain "github.com/copystack/printledger/internal/manualentry/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() manualdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, e *manualdomain.ManualEntry) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO manual_entries (id, date, amount, cost, description, category, operator, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Date,
		e.Amount,
		e.Cost,
		e.Description,
		e.Category,
		e.Operator,
		e.CreatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM manual_entries WHERE id = ?`,
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*manualdomain.ManualEntry, error) {
	var entry manualdomain.ManualEntry
	err := db.WithContext(ctx).Raw(
		`SELECT id, date, amount, cost, description, category, operator, created_at
		 FROM manual_entries WHERE id = ?`,
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

func (r *repo) ListRange(ctx context.Context, db *gorm.DB, from, to day.Date) ([]manualdomain.ManualEntry, error) {
	var entries []manualdomain.ManualEntry
	err := db.WithContext(ctx).Raw(
		`SELECT id, date, amount, cost, description, category, operator, created_at
		 FROM manual_entries WHERE date >= ? AND date <= ?
		 ORDER BY date ASC, created_at ASC`,
		from,
		to,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
