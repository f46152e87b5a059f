package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() devicedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, d *devicedomain.Device) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO devices (id, name, class, endpoint, price_per_page, cost_per_page,
		                      revenue_formula, cost_formula, status, attributes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.Name,
		d.Class,
		d.Endpoint,
		d.PricePerPage,
		d.CostPerPage,
		d.RevenueFormula,
		d.CostFormula,
		d.Status,
		d.Attributes,
		d.CreatedAt,
		d.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, d *devicedomain.Device) error {
	return db.WithContext(ctx).Exec(
		`UPDATE devices
		 SET name = ?, class = ?, endpoint = ?, price_per_page = ?, cost_per_page = ?,
		     revenue_formula = ?, cost_formula = ?, attributes = ?, updated_at = ?
		 WHERE id = ?`,
		d.Name,
		d.Class,
		d.Endpoint,
		d.PricePerPage,
		d.CostPerPage,
		d.RevenueFormula,
		d.CostFormula,
		d.Attributes,
		d.UpdatedAt,
		d.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM devices WHERE id = ?`,
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*devicedomain.Device, error) {
	var dev devicedomain.Device
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, class, endpoint, price_per_page, cost_per_page,
		        revenue_formula, cost_formula, status, last_seen_at, attributes, created_at, updated_at
		 FROM devices WHERE id = ?`,
		id,
	).Scan(&dev).Error
	if err != nil {
		return nil, err
	}
	if dev.ID == 0 {
		return nil, nil
	}
	return &dev, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]devicedomain.Device, error) {
	var devices []devicedomain.Device
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, class, endpoint, price_per_page, cost_per_page,
		        revenue_formula, cost_formula, status, last_seen_at, attributes, created_at, updated_at
		 FROM devices ORDER BY created_at ASC`,
	).Scan(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status devicedomain.Status, seenAt *time.Time) error {
	if seenAt != nil {
		return db.WithContext(ctx).Exec(
			`UPDATE devices SET status = ?, last_seen_at = ?, updated_at = ? WHERE id = ?`,
			status,
			seenAt,
			time.Now().UTC(),
			id,
		).Error
	}
	return db.WithContext(ctx).Exec(
		`UPDATE devices SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC(),
		id,
	).Error
}
