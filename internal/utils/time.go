package utils

import (
	"time"

	"github.com/araddon/dateparse"
)

// TimeParser accepts any common timestamp layout (RFC3339, unix dates,
// "2006-01-02 15:04:05", ...) and returns the parsed time.
func TimeParser(datestr string) (time.Time, error) {
	t, err := dateparse.ParseAny(datestr)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
