package aggregate

import (
	"encoding/json"
	"testing"

	"gatherly/models"
)

func TestAttendanceRateZeroDenominator(t *testing.T) {
	if got := AttendanceRate(0, 0); got != 0 {
		t.Fatalf("AttendanceRate(0,0) = %d, want 0 (not NaN, not a panic)", got)
	}
}

func TestAttendanceRateRounding(t *testing.T) {
	if got := AttendanceRate(1, 2); got != 33 {
		t.Errorf("AttendanceRate(1,2) = %d, want 33", got)
	}
	if got := AttendanceRate(2, 1); got != 67 {
		t.Errorf("AttendanceRate(2,1) = %d, want 67 (round half up)", got)
	}
	if got := AttendanceRate(1, 1); got != 50 {
		t.Errorf("AttendanceRate(1,1) = %d, want 50", got)
	}
}

func TestMonthlyAttendanceCoercion(t *testing.T) {
	raw := []byte(`[
		{"month": "2025-01", "present": "8", "absent": 2},
		{"month": "2025-02", "present": 5, "absent": "5"},
		{"month": "2025-03", "present": "junk", "absent": "-3"}
	]`)

	var records []models.MonthlyStat
	if err := json.Unmarshal(raw, &records); err != nil {
		t.Fatalf("decode: %v", err)
	}

	summary := MonthlyAttendance(records)

	if len(summary.Months) != 3 {
		t.Fatalf("got %d months, want 3", len(summary.Months))
	}
	if summary.Months[0].Rate != 80 {
		t.Errorf("January rate = %d, want 80", summary.Months[0].Rate)
	}
	if summary.Months[1].Rate != 50 {
		t.Errorf("February rate = %d, want 50", summary.Months[1].Rate)
	}
	// Unparseable and negative inputs coerce to 0; an empty month rates 0.
	if summary.Months[2].Present != 0 || summary.Months[2].Absent != 0 || summary.Months[2].Rate != 0 {
		t.Errorf("March = %+v, want zeros", summary.Months[2])
	}

	if summary.TotalPresent != 13 || summary.TotalAbsent != 7 {
		t.Errorf("totals = %d/%d, want 13 present, 7 absent", summary.TotalPresent, summary.TotalAbsent)
	}
	if summary.OverallRate != 65 {
		t.Errorf("overall rate = %d, want 65", summary.OverallRate)
	}
}

func TestMonthlyAttendanceEmpty(t *testing.T) {
	summary := MonthlyAttendance(nil)
	if summary.OverallRate != 0 || len(summary.Months) != 0 {
		t.Fatalf("empty input summary = %+v", summary)
	}
}
