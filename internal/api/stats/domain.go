package stats

import (
	"context"
	"time"
)

// StatsRepository recomputes every aggregate from the stored records on each
// call. Nothing here is cached: the record set mutates only via append and
// delete-all, and a stale rollup would be a correctness bug.
type StatsRepository interface {
	SummaryStats(ctx context.Context) (*SummaryStats, error)
	DeviceSummaries(ctx context.Context) ([]DeviceSummary, error)
}

type StatsService interface {
	Overview(ctx context.Context) (*SummaryStats, []DeviceSummary, error)
	Devices(ctx context.Context) ([]DeviceSummary, error)
}

// SummaryStats is the process-wide rollup over the full current record set.
// AvgExcess and MaxSpeed are rounded to two decimals.
type SummaryStats struct {
	Total               int64   `json:"total"`
	DistinctDeviceCount int64   `json:"distinctDeviceCount"`
	AvgExcess           float64 `json:"avgExcess"`
	MaxSpeed            float64 `json:"maxSpeed"`
	SevereCount         int64   `json:"severeCount"`
	ModerateCount       int64   `json:"moderateCount"`
	MinorCount          int64   `json:"minorCount"`
}

// DeviceSummary is derived per distinct device, never stored.
type DeviceSummary struct {
	Device          string    `json:"device"`
	TotalViolations int64     `json:"totalViolations"`
	MaxSpeed        float64   `json:"maxSpeed"`
	LastSeen        time.Time `json:"lastSeen"`
}
