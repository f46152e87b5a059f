package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, dev *Device) error
	Update(ctx context.Context, db *gorm.DB, dev *Device) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Device, error)
	List(ctx context.Context, db *gorm.DB) ([]Device, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status, seenAt *time.Time) error
}
