// Package delivery decides whether a notification should be surfaced to a
// user right now, given the user's preference record. It is pure decision
// logic: no I/O, no clocks of its own, no channel transport. Callers
// (dispatch pipeline, external digest scheduler) poll Evaluate and act on
// the answer.
package delivery

import (
	"strconv"
	"strings"
	"time"

	"adminboard-be/internal/entity"
)

// Decision is the outcome for one (record, category, instant) triple.
// Eligible=false with a nil NextEligibleAt means the category is switched
// off: suppression is permanent until preferences change, not a deferral.
type Decision struct {
	Eligible       bool
	NextEligibleAt *time.Time
}

// Evaluate applies the gates in order: category toggle, quiet hours, digest
// frequency. The first gate that refuses wins.
func Evaluate(record *entity.PreferenceRecord, category entity.Category, at time.Time) Decision {
	if record == nil {
		record = entity.DefaultPreferenceRecord("")
	}

	if !record.Categories.Enabled(category) {
		return Decision{Eligible: false, NextEligibleAt: nil}
	}

	if record.QuietHours.Enabled {
		if next, inside := quietHoursNextEnd(record.QuietHours, at); inside {
			return Decision{Eligible: false, NextEligibleAt: &next}
		}
	}

	switch record.Frequency {
	case entity.FrequencyDaily:
		next := nextMidnight(at)
		return Decision{Eligible: false, NextEligibleAt: &next}
	case entity.FrequencyWeekly:
		next := nextWeekday(at, time.Monday)
		return Decision{Eligible: false, NextEligibleAt: &next}
	}

	return Decision{Eligible: true}
}

// quietHoursNextEnd reports whether at falls inside the window and, if so,
// the next end boundary. Start > End means the window wraps midnight
// (22:00-07:00: inside iff t >= 22:00 or t < 07:00). Start is inclusive,
// End exclusive. Malformed clock strings disable the window.
func quietHoursNextEnd(qh entity.QuietHours, at time.Time) (time.Time, bool) {
	start, okS := parseClock(qh.Start)
	end, okE := parseClock(qh.End)
	if !okS || !okE || start == end {
		return time.Time{}, false
	}

	minute := at.Hour()*60 + at.Minute()

	var inside bool
	if start < end {
		inside = minute >= start && minute < end
	} else {
		inside = minute >= start || minute < end
	}
	if !inside {
		return time.Time{}, false
	}

	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	endAt := day.Add(time.Duration(end) * time.Minute)
	if start > end && minute >= start {
		// Evening side of a wrapping window: the end lands tomorrow.
		endAt = endAt.AddDate(0, 0, 1)
	}
	return endAt, true
}

// parseClock converts "HH:MM" to minutes past midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func nextMidnight(at time.Time) time.Time {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return day.AddDate(0, 0, 1)
}

// nextWeekday returns the next strictly-future occurrence of 00:00 on the
// given weekday. A weekly digest evaluated on Monday waits for next Monday.
func nextWeekday(at time.Time, weekday time.Weekday) time.Time {
	delta := (int(weekday) - int(at.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return day.AddDate(0, 0, delta)
}
