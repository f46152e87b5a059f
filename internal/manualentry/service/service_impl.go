package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
	manualdomain "github.com/copystack/printledger/internal/manualentry/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  manualdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  manualdomain.Repository
	genID *snowflake.Node
}

func New(p Params) manualdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("manualentry.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req manualdomain.CreateRequest) (*manualdomain.Response, error) {
	date, err := day.Parse(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, manualdomain.ErrInvalidDate
	}

	amount, err := parseMoney(req.Amount)
	if err != nil {
		return nil, err
	}
	cost, err := parseMoney(req.Cost)
	if err != nil {
		return nil, err
	}

	entry := &manualdomain.ManualEntry{
		ID:          s.genID.Generate(),
		Date:        date,
		Amount:      amount,
		Cost:        cost,
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Operator:    strings.TrimSpace(req.Operator),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, entry); err != nil {
		return nil, err
	}

	return toResponse(entry), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	entryID, err := manualdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return manualdomain.ErrInvalidID
	}

	entry, err := s.repo.FindByID(ctx, s.db, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return manualdomain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, entryID)
}

func (s *Service) ListRange(ctx context.Context, from, to day.Date) ([]manualdomain.Response, error) {
	if err := day.ValidateRange(from, to); err != nil {
		return nil, err
	}

	items, err := s.repo.ListRange(ctx, s.db, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]manualdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func parseMoney(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, manualdomain.ErrInvalidAmount
	}
	return parsed, nil
}

func toResponse(e *manualdomain.ManualEntry) *manualdomain.Response {
	return &manualdomain.Response{
		ID:          e.ID.String(),
		Date:        e.Date.String(),
		Amount:      e.Amount.String(),
		Cost:        e.Cost.String(),
		Description: e.Description,
		Category:    e.Category,
		Operator:    e.Operator,
		CreatedAt:   e.CreatedAt,
	}
}
