package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/copystack/printledger/internal/day"
	wastedomain "github.com/copystack/printledger/internal/waste/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  wastedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  wastedomain.Repository
	genID *snowflake.Node
}

func New(p Params) wastedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("waste.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) AddEntry(ctx context.Context, req wastedomain.AddEntryRequest) (*wastedomain.EntryResponse, error) {
	deviceID, err := wastedomain.ParseID(strings.TrimSpace(req.DeviceID))
	if err != nil || deviceID == 0 {
		return nil, wastedomain.ErrInvalidDevice
	}
	date, err := day.Parse(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, wastedomain.ErrInvalidDate
	}
	if req.Count <= 0 {
		return nil, wastedomain.ErrInvalidCount
	}

	entry := &wastedomain.WasteEntry{
		ID:        s.genID.Generate(),
		DeviceID:  deviceID,
		Date:      date,
		Count:     req.Count,
		Note:      strings.TrimSpace(req.Note),
		Operator:  strings.TrimSpace(req.Operator),
		CreatedAt: time.Now().UTC(),
	}

	// Entry insert and summary recompute commit together so the summary
	// row is never observed out of sync with the entries.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertEntry(ctx, tx, entry); err != nil {
			return err
		}
		return s.repo.RecomputeSummary(ctx, tx, deviceID, date)
	})
	if err != nil {
		return nil, err
	}

	return toResponse(entry), nil
}

func (s *Service) RemoveEntry(ctx context.Context, id string) error {
	entryID, err := wastedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return wastedomain.ErrInvalidID
	}

	entry, err := s.repo.FindEntry(ctx, s.db, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return wastedomain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteEntry(ctx, tx, entryID); err != nil {
			return err
		}
		return s.repo.RecomputeSummary(ctx, tx, entry.DeviceID, entry.Date)
	})
}

func (s *Service) EntriesFor(ctx context.Context, deviceID, date string) ([]wastedomain.EntryResponse, error) {
	id, err := wastedomain.ParseID(strings.TrimSpace(deviceID))
	if err != nil || id == 0 {
		return nil, wastedomain.ErrInvalidDevice
	}
	parsed, err := day.Parse(strings.TrimSpace(date))
	if err != nil {
		return nil, wastedomain.ErrInvalidDate
	}

	items, err := s.repo.ListEntries(ctx, s.db, id, parsed)
	if err != nil {
		return nil, err
	}

	resp := make([]wastedomain.EntryResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) SummaryFor(ctx context.Context, deviceID, date string) (int64, error) {
	id, err := wastedomain.ParseID(strings.TrimSpace(deviceID))
	if err != nil || id == 0 {
		return 0, wastedomain.ErrInvalidDevice
	}
	parsed, err := day.Parse(strings.TrimSpace(date))
	if err != nil {
		return 0, wastedomain.ErrInvalidDate
	}

	summary, err := s.repo.FindSummary(ctx, s.db, id, parsed)
	if err != nil {
		return 0, err
	}
	if summary == nil {
		return 0, nil
	}
	return summary.Total, nil
}

func toResponse(e *wastedomain.WasteEntry) *wastedomain.EntryResponse {
	return &wastedomain.EntryResponse{
		ID:        e.ID.String(),
		DeviceID:  e.DeviceID.String(),
		Date:      e.Date.String(),
		Count:     e.Count,
		Note:      e.Note,
		Operator:  e.Operator,
		CreatedAt: e.CreatedAt,
	}
}
