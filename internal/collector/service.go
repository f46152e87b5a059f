package collector

import (
	"context"
	"strings"
	"time"

	"github.com/copystack/printledger/internal/clock"
	"github.com/copystack/printledger/internal/config"
	"github.com/copystack/printledger/internal/day"
	devicedomain "github.com/copystack/printledger/internal/device/domain"
	"github.com/copystack/printledger/internal/metrics"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Result is one device's outcome of a refresh batch.
type Result struct {
	DeviceID string              `json:"device_id"`
	Name     string              `json:"name"`
	Date     string              `json:"date,omitempty"`
	Counter  int64               `json:"counter,omitempty"`
	Status   devicedomain.Status `json:"status"`
	Failure  FailureKind         `json:"failure,omitempty"`
	Error    string              `json:"error,omitempty"`
}

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Cfg        config.Config
	Clock      clock.Clock
	DeviceRepo devicedomain.Repository
	Devices    devicedomain.Service
	Readings   readingdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	cfg         config.Config
	clock       clock.Clock
	deviceRepo  devicedomain.Repository
	devices     devicedomain.Service
	readings    readingdomain.Service
	httpFetcher Fetcher
	snmpFetcher Fetcher
	metrics     *metrics.RefreshMetrics
}

func New(p Params) *Service {
	timeout := time.Duration(p.Cfg.FetchTimeoutSeconds) * time.Second
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("collector.service"),
		cfg:         p.Cfg,
		clock:       p.Clock,
		deviceRepo:  p.DeviceRepo,
		devices:     p.Devices,
		readings:    p.Readings,
		httpFetcher: NewHTTPFetcher(timeout),
		snmpFetcher: NewSNMPFetcher(timeout),
		metrics:     metrics.Refresh(),
	}
}

// RefreshAll fetches every registered device once and records today's
// reading. One device failing never aborts the batch; each failure lands in
// its Result instead. Fetches fan out up to the configured parallelism, but
// each device is owned by exactly one goroutine, so per-device writes stay
// serialized.
func (s *Service) RefreshAll(ctx context.Context) ([]Result, error) {
	started := time.Now()
	defer func() { s.metrics.ObserveRun(time.Since(started)) }()

	devices, err := s.deviceRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(devices))
	if s.cfg.RefreshParallelism <= 1 {
		for i := range devices {
			results[i] = s.refresh(ctx, &devices[i])
		}
		return results, nil
	}

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.RefreshParallelism)
	for i := range devices {
		g.Go(func() error {
			results[i] = s.refresh(ctx, &devices[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RefreshDevice runs a user-triggered refresh of a single device.
func (s *Service) RefreshDevice(ctx context.Context, id string) (*Result, error) {
	devID, err := devicedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, devicedomain.ErrInvalidID
	}
	dev, err := s.deviceRepo.FindByID(ctx, s.db, devID)
	if err != nil {
		return nil, err
	}
	if dev == nil {
		return nil, devicedomain.ErrNotFound
	}
	result := s.refresh(ctx, dev)
	return &result, nil
}

func (s *Service) refresh(ctx context.Context, dev *devicedomain.Device) Result {
	result := Result{DeviceID: dev.ID.String(), Name: dev.Name}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.FetchTimeoutSeconds)*time.Second)
	defer cancel()

	counter, err := s.fetcherFor(dev.Endpoint).Fetch(fetchCtx, dev)
	if err != nil {
		kind := classify(err)
		status := StatusFor(kind)
		s.metrics.IncFetch(outcomeFor(kind))
		s.log.Warn("counter fetch failed",
			zap.String("device_id", dev.ID.String()),
			zap.String("failure", string(kind)),
			zap.Error(err),
		)
		if serr := s.devices.SetStatus(ctx, dev.ID.String(), status); serr != nil {
			s.log.Error("status update failed", zap.String("device_id", dev.ID.String()), zap.Error(serr))
		}
		result.Status = status
		result.Failure = kind
		result.Error = err.Error()
		return result
	}

	now := s.clock.Now()
	today := day.FromTime(now)
	if _, err := s.readings.Record(ctx, readingdomain.RecordRequest{
		DeviceID:   dev.ID.String(),
		Date:       today.String(),
		Counter:    counter,
		CapturedAt: now,
	}); err != nil {
		s.metrics.IncFetch(metrics.FetchOutcomeStoreError)
		s.log.Error("reading store failed", zap.String("device_id", dev.ID.String()), zap.Error(err))
		result.Status = dev.Status
		result.Error = err.Error()
		return result
	}

	s.metrics.IncFetch(metrics.FetchOutcomeOK)
	s.metrics.IncRecorded()
	if err := s.devices.SetStatus(ctx, dev.ID.String(), devicedomain.StatusOnline); err != nil {
		s.log.Error("status update failed", zap.String("device_id", dev.ID.String()), zap.Error(err))
	}

	result.Date = today.String()
	result.Counter = counter
	result.Status = devicedomain.StatusOnline
	return result
}

func (s *Service) fetcherFor(endpoint string) Fetcher {
	if strings.HasPrefix(endpoint, "snmp://") {
		return s.snmpFetcher
	}
	return s.httpFetcher
}
