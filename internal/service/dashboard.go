package service

import (
	"context"
	"time"

	"github.com/xolan/daylog/internal/stats"
)

// DashboardService computes the dashboard from the journal
type DashboardService struct {
	journal *JournalService
	scale   stats.Scale
	now     func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(journal *JournalService, scale stats.Scale, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{journal: journal, scale: scale.WithDefaults(), now: now}
}

// Summary returns the dashboard for every loaded entry.
func (s *DashboardService) Summary(ctx context.Context) (stats.Summary, error) {
	if err := s.journal.Open(ctx); err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(s.journal.Store().Entries(), s.now(), s.scale), nil
}
