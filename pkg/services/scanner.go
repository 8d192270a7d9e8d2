package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/apperrors"
	"github.com/MariiaZhytnikova/Airguardian/pkg/metrics"
	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
	"github.com/MariiaZhytnikova/Airguardian/pkg/nfz"
)

// FleetFetcher is the slice of the telemetry client the scanner needs.
type FleetFetcher interface {
	FetchFleet(ctx context.Context) ([]models.RawDronePosition, error)
}

// Scanner runs violation scan cycles: fetch the fleet snapshot, filter
// malformed entries, test the geofence, resolve owners and record
// violations. Each entry is processed independently so one bad record
// cannot abort the batch; there is no batch-level transaction.
//
// A drone that stays inside the zone produces a new violation every
// cycle. There is no suppression window; deduplication is a product
// decision that has deliberately not been made here.
type Scanner struct {
	fleet    FleetFetcher
	recorder ViolationRecorder
	zone     nfz.Zone
	interval time.Duration
	trigger  chan struct{}
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewScanner creates a scanner. metrics may be nil in tests.
func NewScanner(fleet FleetFetcher, recorder ViolationRecorder, zone nfz.Zone, interval time.Duration, m *metrics.Metrics, logger *zap.Logger) *Scanner {
	return &Scanner{
		fleet:    fleet,
		recorder: recorder,
		zone:     zone,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		metrics:  m,
		logger:   logger.Named("scanner"),
	}
}

// RequestScan signals the scheduler to run a cycle soon. It never blocks
// and never runs the scan inline: read handlers use it so a slow
// upstream cannot stall a request. A signal is dropped if one is
// already pending.
func (s *Scanner) RequestScan() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Start runs the scan scheduler until ctx is cancelled. Cycles run on a
// fixed cadence and on demand via RequestScan.
func (s *Scanner) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scan scheduler started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scan scheduler stopped")
			return
		case <-ticker.C:
			s.runAndLog(ctx)
		case <-s.trigger:
			s.runAndLog(ctx)
		}
	}
}

// runAndLog runs one cycle; scan failures are logged, never propagated
// to any request.
func (s *Scanner) runAndLog(ctx context.Context) {
	report, err := s.RunCycle(ctx)
	if err != nil {
		s.logger.Error("Scan cycle failed", zap.Error(err))
		return
	}
	s.logger.Info("Scan cycle complete",
		zap.String("cycle_id", report.CycleID.String()),
		zap.Int("processed", report.Processed),
		zap.Int("skipped", report.Skipped),
		zap.Int("violations_recorded", report.ViolationsRecorded))
}

// RunCycle executes one scan pass and returns its report. A fetch-level
// failure returns an error with nothing persisted; per-entry failures
// are accumulated in the report and processing continues.
func (s *Scanner) RunCycle(ctx context.Context) (*models.ScanReport, error) {
	report := &models.ScanReport{CycleID: uuid.New()}
	start := time.Now()
	defer func() { s.metrics.ObserveCycleDuration(time.Since(start)) }()

	fleet, err := s.fleet.FetchFleet(ctx)
	if err != nil {
		s.metrics.IncrementCycle("fetch_failed")
		return nil, err
	}

	for _, raw := range fleet {
		report.Processed++

		pos, err := raw.Validate()
		if err != nil {
			reason := models.SkipMalformed
			if errors.Is(err, models.ErrMissingOwner) {
				// Drones with unknown ownership are never flagged,
				// even inside the zone.
				reason = models.SkipMissingOwner
			}
			report.Record(raw, reason)
			s.metrics.IncrementSkipped(reason)
			s.logger.Warn("Skipping fleet entry",
				zap.String("cycle_id", report.CycleID.String()),
				zap.String("reason", reason))
			continue
		}

		if !s.zone.Contains(pos.X, pos.Y) {
			continue
		}

		if _, err := s.recorder.Record(ctx, pos.DroneID, pos.OwnerID, pos.X, pos.Y, pos.Z); err != nil {
			reason := s.classifyRecordError(err)
			report.Record(raw, reason)
			s.metrics.IncrementSkipped(reason)
			s.logger.Warn("Failed to record violation",
				zap.String("cycle_id", report.CycleID.String()),
				zap.String("owner_id", pos.OwnerID),
				zap.String("reason", reason),
				zap.Error(err))
			continue
		}

		report.ViolationsRecorded++
		s.metrics.IncrementViolations(1)
	}

	s.metrics.IncrementCycle("ok")
	return report, nil
}

func (s *Scanner) classifyRecordError(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrOwnerNotFound):
		return models.SkipOwnerNotFound
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		return models.SkipUpstreamUnavailable
	default:
		return models.SkipStorageError
	}
}
