package service

import (
	"context"
	"log/slog"
	"time"
)

// HousekeepingService periodically sweeps expired entries out of the
// revocation ledger so the table does not grow without bound. Removal is
// storage cleanup only: an entry past its original expiry belongs to a
// token that is already invalid by expiry.
type HousekeepingService struct {
	Ledger   *RevocationService
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service with the given
// sweep interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(
	ledger *RevocationService,
	logger *slog.Logger,
	interval time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Ledger:   ledger,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the background worker, blocking until any in-progress
// sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	deleted, err := s.Ledger.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		s.Logger.Error("revocation ledger sweep failed", "error", err)
		return
	}
	s.Logger.Info("revocation ledger sweep completed", "deleted", deleted)
}
