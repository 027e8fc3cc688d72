package violation

import (
	"fmt"
	"strconv"
	"strings"

	"speedwatch-api-server/internal/models"
)

const unknownDevice = "UNKNOWN"

// Validate checks a raw payload and either returns the normalized record to
// insert or the full ordered list of problems. Every rule runs independently;
// nothing short-circuits, so all failing checks are reported together.
//
// Pure function: no side effects, store-assigned fields (id, receivedAt) stay
// zero here.
func Validate(req SubmitRequest) (models.Violation, []string) {
	var errs []string

	speed, speedOK := toFloat(req.Speed)
	if !speedOK {
		errs = append(errs, "speed must be a number")
	}

	limit, limitOK := toFloat(req.Limit)
	if !limitOK {
		errs = append(errs, "limit must be a number")
	}

	// The presence error and the enum error are mutually exclusive: an
	// absent tier reports only "tier is required", while a present but
	// invalid value (including the empty string) reports only the
	// membership error. Deployed firmware depends on this exact shape.
	var tier string
	if req.Tier == nil {
		errs = append(errs, "tier is required")
	} else {
		tier = strings.ToUpper(strings.TrimSpace(asString(req.Tier)))
		if !models.ValidTier(tier) {
			errs = append(errs, "tier must be one of MINOR, MODERATE, SEVERE")
		}
	}

	if len(errs) > 0 {
		return models.Violation{}, errs
	}

	device := asString(req.Device)
	if device == "" {
		device = unknownDevice
	}

	excess, excessOK := toFloat(req.Excess)
	if !excessOK {
		excess = speed - limit
	}

	return models.Violation{
		Device:     device,
		Speed:      speed,
		SpeedLimit: limit,
		Excess:     excess,
		Tier:       tier,
		Lat:        toFloatPtr(req.Lat),
		Lon:        toFloatPtr(req.Lon),
	}, nil
}

// toFloat coerces a decoded JSON value to float64. Numbers pass through;
// numeric strings are parsed. Anything else (nil, bool, objects) fails.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toFloatPtr is toFloat for the independently optional lat/lon fields:
// uncoercible values are stored as null, never rejected.
func toFloatPtr(v interface{}) *float64 {
	if f, ok := toFloat(v); ok {
		return &f
	}
	return nil
}

// asString renders a decoded JSON value for text fields. Non-string scalars
// are formatted rather than rejected; nil maps to the empty string.
func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}
