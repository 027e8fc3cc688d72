package stats

import (
	"context"

	"go.uber.org/zap"
)

type statsService struct {
	repository StatsRepository
	logger     *zap.Logger
}

var _ StatsService = (*statsService)(nil)

func NewStatsService(repository StatsRepository, logger *zap.Logger) StatsService {
	return &statsService{
		repository: repository,
		logger:     logger,
	}
}

// Overview returns the process-wide rollup plus the per-device breakdown,
// both recomputed from the store on this call.
func (s *statsService) Overview(ctx context.Context) (*SummaryStats, []DeviceSummary, error) {
	stats, err := s.repository.SummaryStats(ctx)
	if err != nil {
		return nil, nil, err
	}

	devices, err := s.repository.DeviceSummaries(ctx)
	if err != nil {
		return nil, nil, err
	}

	return stats, devices, nil
}

func (s *statsService) Devices(ctx context.Context) ([]DeviceSummary, error) {
	return s.repository.DeviceSummaries(ctx)
}
