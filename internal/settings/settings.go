// Package settings stores the handful of shop-wide scalars, currently the
// monthly rent applied as a fixed cost during aggregation.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const KeyMonthlyRent = "monthly_rent"

// Setting is a single key/value row. The key column is called name because
// "key" is reserved in MySQL.
type Setting struct {
	Name      string    `json:"name" gorm:"primaryKey;type:varchar(190)"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Setting) TableName() string { return "settings" }

var ErrInvalidValue = errors.New("invalid_value")

type Service interface {
	// MonthlyRent returns the configured rent, zero when unset.
	MonthlyRent(ctx context.Context) (decimal.Decimal, error)
	SetMonthlyRent(ctx context.Context, value string) error
}

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) Service {
	return &service{
		db:  p.DB,
		log: p.Log.Named("settings.service"),
	}
}

func (s *service) MonthlyRent(ctx context.Context) (decimal.Decimal, error) {
	var row Setting
	err := s.db.WithContext(ctx).Raw(
		`SELECT name, value, updated_at FROM settings WHERE name = ?`,
		KeyMonthlyRent,
	).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	if row.Name == "" {
		return decimal.Zero, nil
	}

	rent, err := decimal.NewFromString(row.Value)
	if err != nil {
		s.log.Warn("stored rent is not numeric, treating as zero", zap.String("value", row.Value))
		return decimal.Zero, nil
	}
	return rent, nil
}

func (s *service) SetMonthlyRent(ctx context.Context, value string) error {
	rent, err := decimal.NewFromString(value)
	if err != nil || rent.IsNegative() {
		return ErrInvalidValue
	}

	row := &Setting{
		Name:      KeyMonthlyRent,
		Value:     rent.String(),
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(row).Error
}

// Module wires the settings service.
var Module = fx.Module("settings.service",
	fx.Provide(New),
)
