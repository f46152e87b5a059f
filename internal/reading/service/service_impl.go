package service

import (
	"context"
	"strings"
	"time"

	"github.com/copystack/printledger/internal/day"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	"github.com/copystack/printledger/internal/reconcile"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo readingdomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo readingdomain.Repository
}

func New(p Params) readingdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("reading.service"),
		repo: p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, req readingdomain.RecordRequest) (*readingdomain.Response, error) {
	deviceID, err := readingdomain.ParseID(strings.TrimSpace(req.DeviceID))
	if err != nil || deviceID == 0 {
		return nil, readingdomain.ErrInvalidDevice
	}
	if req.Counter < 0 {
		return nil, readingdomain.ErrInvalidCounter
	}

	date, err := day.Parse(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, readingdomain.ErrInvalidDate
	}

	capturedAt := req.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now().UTC()
	}

	reading := &readingdomain.Reading{
		DeviceID:   deviceID,
		Date:       date,
		Counter:    req.Counter,
		CapturedAt: capturedAt,
	}
	if err := s.repo.Upsert(ctx, s.db, reading); err != nil {
		return nil, err
	}

	s.log.Debug("reading recorded",
		zap.String("device_id", deviceID.String()),
		zap.String("date", date.String()),
		zap.Int64("counter", req.Counter),
	)
	return toResponse(reading), nil
}

func (s *Service) History(ctx context.Context, deviceID string, from, to day.Date) ([]readingdomain.Response, error) {
	id, err := readingdomain.ParseID(strings.TrimSpace(deviceID))
	if err != nil || id == 0 {
		return nil, readingdomain.ErrInvalidDevice
	}
	if err := day.ValidateRange(from, to); err != nil {
		return nil, err
	}

	items, err := s.repo.ListRange(ctx, s.db, id, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]readingdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Deltas(ctx context.Context, deviceID string, from, to day.Date) ([]readingdomain.DeltaResponse, error) {
	id, err := readingdomain.ParseID(strings.TrimSpace(deviceID))
	if err != nil || id == 0 {
		return nil, readingdomain.ErrInvalidDevice
	}
	if err := day.ValidateRange(from, to); err != nil {
		return nil, err
	}

	history, err := s.repo.ListUpTo(ctx, s.db, id, to)
	if err != nil {
		return nil, err
	}

	deltas, err := reconcile.Deltas(history, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]readingdomain.DeltaResponse, 0, len(deltas))
	for _, d := range deltas {
		resp = append(resp, readingdomain.DeltaResponse{
			Date:  d.Date.String(),
			Delta: d.Pages,
			Reset: d.Reset,
		})
	}
	return resp, nil
}

func toResponse(r *readingdomain.Reading) *readingdomain.Response {
	return &readingdomain.Response{
		DeviceID:   r.DeviceID.String(),
		Date:       r.Date.String(),
		Counter:    r.Counter,
		CapturedAt: r.CapturedAt,
	}
}
