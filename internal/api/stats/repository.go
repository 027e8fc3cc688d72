package stats

import (
	"context"
	"math"

	"gorm.io/gorm"

	commonerrors "speedwatch-api-server/internal/api/common/errors"
	"speedwatch-api-server/internal/models"
	"speedwatch-api-server/internal/utils"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{
		db: db,
	}
}

func (r *statsRepository) SummaryStats(ctx context.Context) (*SummaryStats, error) {
	var stats SummaryStats
	err := r.db.WithContext(ctx).
		Model(&models.Violation{}).
		Select(`COUNT(*) AS total,
COUNT(DISTINCT device) AS distinct_device_count,
COALESCE(AVG(excess), 0) AS avg_excess,
COALESCE(MAX(speed), 0) AS max_speed,
COALESCE(SUM(CASE WHEN tier = ? THEN 1 ELSE 0 END), 0) AS severe_count,
COALESCE(SUM(CASE WHEN tier = ? THEN 1 ELSE 0 END), 0) AS moderate_count,
COALESCE(SUM(CASE WHEN tier = ? THEN 1 ELSE 0 END), 0) AS minor_count`,
			models.TierSevere, models.TierModerate, models.TierMinor).
		Scan(&stats).Error
	if err != nil {
		return nil, commonerrors.StoreErr("summary stats", err)
	}

	stats.AvgExcess = round2(stats.AvgExcess)
	stats.MaxSpeed = round2(stats.MaxSpeed)
	return &stats, nil
}

// deviceRow carries the grouped aggregates before last_seen is parsed.
// MAX(received_at) is an expression column, so sqlite hands it back as text.
type deviceRow struct {
	Device          string
	TotalViolations int64
	MaxSpeed        float64
	LastSeen        string
}

func (r *statsRepository) DeviceSummaries(ctx context.Context) ([]DeviceSummary, error) {
	rows := []deviceRow{}
	err := r.db.WithContext(ctx).
		Model(&models.Violation{}).
		Select(`device,
COUNT(*) AS total_violations,
MAX(speed) AS max_speed,
MAX(received_at) AS last_seen`).
		Group("device").
		Order("last_seen DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, commonerrors.StoreErr("device summaries", err)
	}

	summaries := make([]DeviceSummary, 0, len(rows))
	for _, row := range rows {
		lastSeen, err := utils.TimeParser(row.LastSeen)
		if err != nil {
			return nil, commonerrors.StoreErr("device summaries", err)
		}
		summaries = append(summaries, DeviceSummary{
			Device:          row.Device,
			TotalViolations: row.TotalViolations,
			MaxSpeed:        row.MaxSpeed,
			LastSeen:        lastSeen,
		})
	}
	return summaries, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
