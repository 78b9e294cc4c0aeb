package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"quickbite.backend/internal/domain/repositories"
	"quickbite.backend/pkg/logger"
)

// StoreHoursJob force-closes merchant storefronts outside the marketplace
// operating window configured in settings. Merchants reopen themselves from
// the portal; the job never opens stores.
type StoreHoursJob struct {
	settings  repositories.SettingsRepository
	merchants repositories.MerchantRepository
	interval  time.Duration
	stop      chan struct{}
	now       func() time.Time
}

// NewStoreHoursJob creates a new store hours job
func NewStoreHoursJob(settings repositories.SettingsRepository, merchants repositories.MerchantRepository) *StoreHoursJob {
	return &StoreHoursJob{
		settings:  settings,
		merchants: merchants,
		interval:  time.Minute,
		stop:      make(chan struct{}),
		now:       time.Now,
	}
}

// Start runs the job until the context is cancelled or Stop is called
func (j *StoreHoursJob) Start(ctx context.Context) {
	logger.Info(ctx, "store hours job started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "store hours job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "store hours job stopped")
			return
		case <-ticker.C:
			j.tick(ctx)
		}
	}
}

// Stop terminates the job loop
func (j *StoreHoursJob) Stop() {
	close(j.stop)
}

func (j *StoreHoursJob) tick(ctx context.Context) {
	doc, err := j.settings.Get(ctx)
	if err != nil {
		logger.Warn(ctx, "store hours job: settings unavailable", zap.Error(err))
		return
	}
	if !doc.OperatingHours.Valid {
		return
	}

	openAt, closeAt, err := parseWindow(doc.OperatingHours.String)
	if err != nil {
		// a malformed window never closes anyone
		return
	}
	if withinWindow(j.now(), openAt, closeAt) {
		return
	}

	n, err := j.merchants.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "store hours job: close failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info(ctx, "storefronts closed outside operating hours", zap.Int64("count", n))
	}
}

// parseWindow parses "HH:MM-HH:MM" into minutes since midnight
func parseWindow(s string) (int, int, error) {
	var oh, om, ch, cm int
	if _, err := fmt.Sscanf(s, "%d:%d-%d:%d", &oh, &om, &ch, &cm); err != nil {
		return 0, 0, err
	}
	if oh < 0 || oh > 23 || ch < 0 || ch > 23 || om < 0 || om > 59 || cm < 0 || cm > 59 {
		return 0, 0, fmt.Errorf("operating hours out of range: %s", s)
	}
	return oh*60 + om, ch*60 + cm, nil
}

// withinWindow reports whether t falls inside the window, handling windows
// that span midnight (e.g. 18:00-02:00).
func withinWindow(t time.Time, openAt, closeAt int) bool {
	minute := t.Hour()*60 + t.Minute()
	if openAt <= closeAt {
		return minute >= openAt && minute < closeAt
	}
	return minute >= openAt || minute < closeAt
}
