package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"speedwatch-api-server/internal/api/common/errors"
	"speedwatch-api-server/internal/utils"
)

const (
	// DefaultLimit applies when the limit parameter is absent, unparsable
	// or not positive.
	DefaultLimit = 200
	// MaxLimit silently caps any requested limit.
	MaxLimit = 1000
)

// parseQuery receives the raw query parameters of a list request.
type parseQuery struct {
	Tier   string `query:"tier,omitempty" json:"-"`
	Device string `query:"device,omitempty" json:"-"`
	Limit  string `query:"limit,omitempty" json:"-"`
	Since  string `query:"since,omitempty" json:"-"`
}

// Filter is the validated filter set consumed by the violation repository.
// All present filters combine with AND; ordering is always newest-first.
type Filter struct {
	Tier   string
	Device string
	Since  *time.Time
	Limit  int
}

func (q parseQuery) ParseAndValidate() (Filter, error) {
	f := Filter{
		// tier is matched exactly against stored upper-cased values. An
		// unknown tier is legal here and simply matches zero records.
		Tier:   strings.ToUpper(strings.TrimSpace(q.Tier)),
		Device: q.Device,
		Limit:  parseLimit(q.Limit),
	}

	if q.Since != "" {
		since, err := utils.TimeParser(q.Since)
		if err != nil {
			return Filter{}, errors.ValidationErr([]string{"since must be a parsable timestamp"})
		}
		f.Since = &since
	}

	return f, nil
}

func parseLimit(raw string) int {
	limit := DefaultLimit
	if raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit
}

func ParseAndValidate(c *fiber.Ctx) (Filter, error) {
	query := &parseQuery{}
	if err := c.QueryParser(query); err != nil {
		return Filter{}, errors.ValidationErr([]string{"malformed query parameters"})
	}
	return query.ParseAndValidate()
}
