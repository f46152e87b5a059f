package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	devicedomain "github.com/copystack/printledger/internal/device/domain"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	wastedomain "github.com/copystack/printledger/internal/waste/domain"
	"github.com/copystack/printledger/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        devicedomain.Repository
	ReadingRepo readingdomain.Repository
	WasteRepo   wastedomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     devicedomain.Repository
	readings readingdomain.Repository
	waste    wastedomain.Repository
	genID    *snowflake.Node
}

func New(p Params) devicedomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("device.service"),
		repo:     p.Repo,
		readings: p.ReadingRepo,
		waste:    p.WasteRepo,
		genID:    p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req devicedomain.CreateRequest) (*devicedomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, devicedomain.ErrInvalidName
	}

	class := devicedomain.Class(strings.TrimSpace(req.Class))
	if !devicedomain.ValidClass(class) {
		return nil, devicedomain.ErrInvalidClass
	}

	endpoint := strings.TrimSpace(req.Endpoint)
	if !validEndpoint(endpoint) {
		return nil, devicedomain.ErrInvalidEndpoint
	}

	price, err := parseRate(req.PricePerPage)
	if err != nil {
		return nil, err
	}
	cost, err := parseRate(req.CostPerPage)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	dev := &devicedomain.Device{
		ID:             s.genID.Generate(),
		Name:           name,
		Class:          class,
		Endpoint:       endpoint,
		PricePerPage:   price,
		CostPerPage:    cost,
		RevenueFormula: strings.TrimSpace(req.RevenueFormula),
		CostFormula:    strings.TrimSpace(req.CostFormula),
		Status:         devicedomain.StatusOffline,
		Attributes:     req.Attributes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, dev); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, devicedomain.ErrEndpointInUse
		}
		return nil, err
	}

	s.log.Info("device created",
		zap.String("device_id", dev.ID.String()),
		zap.String("endpoint", dev.Endpoint),
	)
	return toResponse(dev), nil
}

func (s *Service) Update(ctx context.Context, req devicedomain.UpdateRequest) (*devicedomain.Response, error) {
	id, err := devicedomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, devicedomain.ErrInvalidID
	}

	dev, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if dev == nil {
		return nil, devicedomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, devicedomain.ErrInvalidName
		}
		dev.Name = name
	}
	if req.Class != nil {
		class := devicedomain.Class(strings.TrimSpace(*req.Class))
		if !devicedomain.ValidClass(class) {
			return nil, devicedomain.ErrInvalidClass
		}
		dev.Class = class
	}
	if req.Endpoint != nil {
		endpoint := strings.TrimSpace(*req.Endpoint)
		if !validEndpoint(endpoint) {
			return nil, devicedomain.ErrInvalidEndpoint
		}
		dev.Endpoint = endpoint
	}
	if req.PricePerPage != nil {
		price, err := parseRate(*req.PricePerPage)
		if err != nil {
			return nil, err
		}
		dev.PricePerPage = price
	}
	if req.CostPerPage != nil {
		cost, err := parseRate(*req.CostPerPage)
		if err != nil {
			return nil, err
		}
		dev.CostPerPage = cost
	}
	if req.RevenueFormula != nil {
		dev.RevenueFormula = strings.TrimSpace(*req.RevenueFormula)
	}
	if req.CostFormula != nil {
		dev.CostFormula = strings.TrimSpace(*req.CostFormula)
	}
	if req.Attributes != nil {
		dev.Attributes = *req.Attributes
	}

	dev.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, dev); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, devicedomain.ErrEndpointInUse
		}
		return nil, err
	}

	return toResponse(dev), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	devID, err := devicedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return devicedomain.ErrInvalidID
	}

	dev, err := s.repo.FindByID(ctx, s.db, devID)
	if err != nil {
		return err
	}
	if dev == nil {
		return devicedomain.ErrNotFound
	}

	// The device's readings and waste go with it in the same transaction;
	// no store keeps facts a fetch or a summary can no longer reach.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.readings.DeleteByDevice(ctx, tx, devID); err != nil {
			return err
		}
		if err := s.waste.DeleteByDevice(ctx, tx, devID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, devID)
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*devicedomain.Response, error) {
	devID, err := devicedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, devicedomain.ErrInvalidID
	}

	dev, err := s.repo.FindByID(ctx, s.db, devID)
	if err != nil {
		return nil, err
	}
	if dev == nil {
		return nil, devicedomain.ErrNotFound
	}

	return toResponse(dev), nil
}

func (s *Service) List(ctx context.Context) ([]devicedomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]devicedomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, status devicedomain.Status) error {
	devID, err := devicedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return devicedomain.ErrInvalidID
	}
	if !devicedomain.ValidStatus(status) {
		return devicedomain.ErrInvalidStatus
	}

	var seenAt *time.Time
	if status == devicedomain.StatusOnline {
		now := time.Now().UTC()
		seenAt = &now
	}
	return s.repo.UpdateStatus(ctx, s.db, devID, status, seenAt)
}

func validEndpoint(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	return strings.HasPrefix(endpoint, "http://") ||
		strings.HasPrefix(endpoint, "https://") ||
		strings.HasPrefix(endpoint, "snmp://")
}

func parseRate(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(trimmed)
	if err != nil || rate.IsNegative() {
		return decimal.Zero, devicedomain.ErrInvalidRate
	}
	return rate, nil
}

func toResponse(d *devicedomain.Device) *devicedomain.Response {
	return &devicedomain.Response{
		ID:             d.ID.String(),
		Name:           d.Name,
		Class:          string(d.Class),
		Endpoint:       d.Endpoint,
		PricePerPage:   d.PricePerPage.String(),
		CostPerPage:    d.CostPerPage.String(),
		RevenueFormula: d.RevenueFormula,
		CostFormula:    d.CostFormula,
		Status:         string(d.Status),
		LastSeenAt:     d.LastSeenAt,
		Attributes:     d.Attributes,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
