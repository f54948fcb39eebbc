package aggregate

import "gatherly/models"

// MonthRate is one month of attendance with its derived rate.
type MonthRate struct {
	Month   string `json:"month"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Rate    int    `json:"attendanceRate"`
}

// AttendanceSummary covers a sequence of monthly stats.
type AttendanceSummary struct {
	Months       []MonthRate `json:"months"`
	TotalPresent int         `json:"totalPresent"`
	TotalAbsent  int         `json:"totalAbsent"`
	OverallRate  int         `json:"attendanceRate"`
}

// AttendanceRate is present over present+absent as a whole percentage,
// rounded half up. An empty month rates 0, not NaN.
func AttendanceRate(present, absent int) int {
	return roundPct(present, present+absent)
}

// MonthlyAttendance coerces per-month records (present/absent may arrive as
// strings; negatives and parse failures count as 0) and derives per-month
// and overall attendance rates. Input order is preserved.
func MonthlyAttendance(records []models.MonthlyStat) AttendanceSummary {
	summary := AttendanceSummary{Months: make([]MonthRate, 0, len(records))}
	for _, rec := range records {
		present := max(rec.Present.Int(), 0)
		absent := max(rec.Absent.Int(), 0)
		summary.Months = append(summary.Months, MonthRate{
			Month:   rec.Month,
			Present: present,
			Absent:  absent,
			Rate:    AttendanceRate(present, absent),
		})
		summary.TotalPresent += present
		summary.TotalAbsent += absent
	}
	summary.OverallRate = AttendanceRate(summary.TotalPresent, summary.TotalAbsent)
	return summary
}
