package models

import (
	"time"
)

// Violation severity tiers. Tier is always stored upper-cased.
const (
	TierMinor    = "MINOR"
	TierModerate = "MODERATE"
	TierSevere   = "SEVERE"
)

// Violation is the persisted speed-violation record. Records are immutable
// after insert; the only destructive operation is delete-all.
type Violation struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Device     string    `gorm:"column:device;index"      json:"device"`
	Speed      float64   `gorm:"column:speed"             json:"speed"`
	SpeedLimit float64   `gorm:"column:speed_limit"       json:"limit"`
	Excess     float64   `gorm:"column:excess"            json:"excess"`
	Tier       string    `gorm:"column:tier;index"        json:"tier"`
	Lat        *float64  `gorm:"column:lat"               json:"lat"`
	Lon        *float64  `gorm:"column:lon"               json:"lon"`
	ReceivedAt time.Time `gorm:"column:received_at;index" json:"receivedAt"`
}

func (Violation) TableName() string {
	return "violations"
}

// ValidTier reports whether t is one of the three known tiers.
// Callers are expected to upper-case t first.
func ValidTier(t string) bool {
	return t == TierMinor || t == TierModerate || t == TierSevere
}
