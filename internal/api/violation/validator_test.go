package violation

import (
	"strings"
	"testing"
)

func TestValidate_Normalizes(t *testing.T) {
	record, errs := Validate(SubmitRequest{
		Device: "D1",
		Speed:  float64(80),
		Limit:  float64(50),
		Tier:   "severe",
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if record.Device != "D1" {
		t.Errorf("device = %q, want D1", record.Device)
	}
	if record.Tier != "SEVERE" {
		t.Errorf("tier = %q, want SEVERE", record.Tier)
	}
	if record.Excess != 30 {
		t.Errorf("excess = %v, want 30 (speed - limit)", record.Excess)
	}
	if record.Lat != nil || record.Lon != nil {
		t.Errorf("lat/lon should be nil when absent")
	}
	if record.ID != 0 || !record.ReceivedAt.IsZero() {
		t.Errorf("store-assigned fields must stay zero in the validator")
	}
}

func TestValidate_CoercesNumericStrings(t *testing.T) {
	record, errs := Validate(SubmitRequest{
		Speed: "88.5",
		Limit: "60",
		Tier:  "MODERATE",
		Lat:   "48.8566",
		Lon:   float64(2.3522),
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if record.Speed != 88.5 || record.SpeedLimit != 60 {
		t.Errorf("speed/limit = %v/%v, want 88.5/60", record.Speed, record.SpeedLimit)
	}
	if record.Excess != 28.5 {
		t.Errorf("excess = %v, want 28.5", record.Excess)
	}
	if record.Lat == nil || *record.Lat != 48.8566 {
		t.Errorf("lat not coerced: %v", record.Lat)
	}
	if record.Lon == nil || *record.Lon != 2.3522 {
		t.Errorf("lon not coerced: %v", record.Lon)
	}
}

func TestValidate_SuppliedExcessWins(t *testing.T) {
	record, errs := Validate(SubmitRequest{
		Speed:  float64(70),
		Limit:  float64(50),
		Excess: float64(25),
		Tier:   "MINOR",
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if record.Excess != 25 {
		t.Errorf("excess = %v, want supplied 25", record.Excess)
	}
}

func TestValidate_DeviceDefaultsToUnknown(t *testing.T) {
	for _, device := range []interface{}{nil, ""} {
		record, errs := Validate(SubmitRequest{
			Device: device,
			Speed:  float64(70),
			Limit:  float64(50),
			Tier:   "MINOR",
		})
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if record.Device != "UNKNOWN" {
			t.Errorf("device = %q, want UNKNOWN", record.Device)
		}
	}
}

func TestValidate_AllChecksReported(t *testing.T) {
	_, errs := Validate(SubmitRequest{
		Speed: "fast",
		Limit: true,
	})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}

	if !strings.Contains(errs[0], "speed") {
		t.Errorf("first error should mention speed: %q", errs[0])
	}
	if !strings.Contains(errs[1], "limit") {
		t.Errorf("second error should mention limit: %q", errs[1])
	}
	if errs[2] != "tier is required" {
		t.Errorf("third error = %q, want tier is required", errs[2])
	}
}

// An absent tier reports only the presence error; a present but invalid tier,
// the empty string included, reports only the membership error. Never both.
func TestValidate_TierErrorExclusivity(t *testing.T) {
	tests := []struct {
		name string
		tier interface{}
		want string
	}{
		{"absent", nil, "tier is required"},
		{"empty string", "", "tier must be one of MINOR, MODERATE, SEVERE"},
		{"unknown value", "EXTREME", "tier must be one of MINOR, MODERATE, SEVERE"},
		{"non-string", float64(3), "tier must be one of MINOR, MODERATE, SEVERE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Validate(SubmitRequest{
				Speed: float64(70),
				Limit: float64(50),
				Tier:  tt.tier,
			})
			if len(errs) != 1 {
				t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
			}
			if errs[0] != tt.want {
				t.Errorf("error = %q, want %q", errs[0], tt.want)
			}
		})
	}
}

func TestValidate_TierCaseInsensitive(t *testing.T) {
	for _, tier := range []string{"minor", "Minor", "MINOR", " minor "} {
		record, errs := Validate(SubmitRequest{
			Speed: float64(60),
			Limit: float64(50),
			Tier:  tier,
		})
		if len(errs) != 0 {
			t.Fatalf("tier %q: unexpected errors: %v", tier, errs)
		}
		if record.Tier != "MINOR" {
			t.Errorf("tier %q stored as %q, want MINOR", tier, record.Tier)
		}
	}
}

func TestValidate_UncoercibleLatLonStoredNull(t *testing.T) {
	record, errs := Validate(SubmitRequest{
		Speed: float64(60),
		Limit: float64(50),
		Tier:  "MINOR",
		Lat:   "north",
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if record.Lat != nil {
		t.Errorf("uncoercible lat should be nil, got %v", *record.Lat)
	}
}
