package delivery

import (
	"testing"
	"time"

	"adminboard-be/internal/entity"
)

func recordWith(mutate func(*entity.PreferenceRecord)) *entity.PreferenceRecord {
	rec := entity.DefaultPreferenceRecord("auth0|tester")
	if mutate != nil {
		mutate(rec)
	}
	return rec
}

// Wednesday 2025-06-11, local time used throughout.
func onDay(hour, min int) time.Time {
	return time.Date(2025, 6, 11, hour, min, 0, 0, time.Local)
}

func TestEvaluateCategoryGate(t *testing.T) {
	tests := []struct {
		name     string
		record   *entity.PreferenceRecord
		category entity.Category
		wantOK   bool
	}{
		{
			name:     "marketing disabled blocks marketing",
			record:   recordWith(func(r *entity.PreferenceRecord) { r.Categories.Marketing = false }),
			category: entity.CategoryMarketing,
			wantOK:   false,
		},
		{
			name:     "marketing disabled does not block system",
			record:   recordWith(func(r *entity.PreferenceRecord) { r.Categories.Marketing = false }),
			category: entity.CategorySystem,
			wantOK:   true,
		},
		{
			name:     "defaults allow everything",
			record:   recordWith(nil),
			category: entity.CategoryUpdates,
			wantOK:   true,
		},
		{
			name:     "nil record falls back to defaults",
			record:   nil,
			category: entity.CategoryMarketing,
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.record, tt.category, onDay(12, 0))
			if got.Eligible != tt.wantOK {
				t.Errorf("Eligible = %v, want %v", got.Eligible, tt.wantOK)
			}
			if !tt.wantOK && got.NextEligibleAt != nil {
				t.Errorf("category suppression must not schedule a retry, got %v", got.NextEligibleAt)
			}
		})
	}
}

func TestEvaluateQuietHoursWrapping(t *testing.T) {
	// 22:00-07:00 wraps midnight
	rec := recordWith(func(r *entity.PreferenceRecord) {
		r.QuietHours = entity.QuietHours{Enabled: true, Start: "22:00", End: "07:00"}
	})

	tests := []struct {
		name     string
		at       time.Time
		wantOK   bool
		wantNext time.Time
	}{
		{
			name:     "late evening is inside, end lands tomorrow",
			at:       onDay(23, 30),
			wantOK:   false,
			wantNext: time.Date(2025, 6, 12, 7, 0, 0, 0, time.Local),
		},
		{
			name:     "early morning is inside, end lands today",
			at:       onDay(3, 0),
			wantOK:   false,
			wantNext: time.Date(2025, 6, 11, 7, 0, 0, 0, time.Local),
		},
		{
			name:   "midday is outside",
			at:     onDay(12, 0),
			wantOK: true,
		},
		{
			name:     "start boundary is inside",
			at:       onDay(22, 0),
			wantOK:   false,
			wantNext: time.Date(2025, 6, 12, 7, 0, 0, 0, time.Local),
		},
		{
			name:   "end boundary is outside",
			at:     onDay(7, 0),
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(rec, entity.CategorySystem, tt.at)
			if got.Eligible != tt.wantOK {
				t.Fatalf("Eligible = %v, want %v", got.Eligible, tt.wantOK)
			}
			if !tt.wantOK {
				if got.NextEligibleAt == nil {
					t.Fatal("quiet-hours suppression must schedule a retry")
				}
				if !got.NextEligibleAt.Equal(tt.wantNext) {
					t.Errorf("NextEligibleAt = %v, want %v", got.NextEligibleAt, tt.wantNext)
				}
			}
		})
	}
}

func TestEvaluateQuietHoursNonWrapping(t *testing.T) {
	rec := recordWith(func(r *entity.PreferenceRecord) {
		r.QuietHours = entity.QuietHours{Enabled: true, Start: "13:00", End: "14:00"}
	})

	got := Evaluate(rec, entity.CategorySystem, onDay(13, 30))
	if got.Eligible {
		t.Fatal("13:30 should be inside a 13:00-14:00 window")
	}
	want := time.Date(2025, 6, 11, 14, 0, 0, 0, time.Local)
	if got.NextEligibleAt == nil || !got.NextEligibleAt.Equal(want) {
		t.Errorf("NextEligibleAt = %v, want %v", got.NextEligibleAt, want)
	}

	if got := Evaluate(rec, entity.CategorySystem, onDay(14, 0)); !got.Eligible {
		t.Error("14:00 (exclusive end) should be outside the window")
	}
}

func TestEvaluateQuietHoursDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "equal boundaries disable the window", start: "09:00", end: "09:00"},
		{name: "malformed start disables the window", start: "25:99", end: "07:00"},
		{name: "missing separator disables the window", start: "2200", end: "07:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recordWith(func(r *entity.PreferenceRecord) {
				r.QuietHours = entity.QuietHours{Enabled: true, Start: tt.start, End: tt.end}
			})
			if got := Evaluate(rec, entity.CategorySystem, onDay(23, 0)); !got.Eligible {
				t.Errorf("degenerate window must not suppress, got %+v", got)
			}
		})
	}
}

func TestEvaluateDigestFrequency(t *testing.T) {
	t.Run("daily defers to next midnight", func(t *testing.T) {
		rec := recordWith(func(r *entity.PreferenceRecord) { r.Frequency = entity.FrequencyDaily })
		got := Evaluate(rec, entity.CategorySystem, onDay(15, 45))
		if got.Eligible {
			t.Fatal("daily digest must defer")
		}
		want := time.Date(2025, 6, 12, 0, 0, 0, 0, time.Local)
		if got.NextEligibleAt == nil || !got.NextEligibleAt.Equal(want) {
			t.Errorf("NextEligibleAt = %v, want %v", got.NextEligibleAt, want)
		}
	})

	t.Run("weekly defers to next Monday", func(t *testing.T) {
		rec := recordWith(func(r *entity.PreferenceRecord) { r.Frequency = entity.FrequencyWeekly })
		got := Evaluate(rec, entity.CategorySystem, onDay(15, 45)) // Wednesday
		if got.Eligible {
			t.Fatal("weekly digest must defer")
		}
		want := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
		if got.NextEligibleAt == nil || !got.NextEligibleAt.Equal(want) {
			t.Errorf("NextEligibleAt = %v, want %v", got.NextEligibleAt, want)
		}
	})

	t.Run("weekly on Monday waits a full week", func(t *testing.T) {
		rec := recordWith(func(r *entity.PreferenceRecord) { r.Frequency = entity.FrequencyWeekly })
		monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)
		got := Evaluate(rec, entity.CategorySystem, monday)
		want := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)
		if got.NextEligibleAt == nil || !got.NextEligibleAt.Equal(want) {
			t.Errorf("NextEligibleAt = %v, want %v", got.NextEligibleAt, want)
		}
	})
}

func TestEvaluateGateOrdering(t *testing.T) {
	// Category gate outranks quiet hours: the answer is permanent
	// suppression, not a deferral to the window's end.
	rec := recordWith(func(r *entity.PreferenceRecord) {
		r.Categories.Marketing = false
		r.QuietHours = entity.QuietHours{Enabled: true, Start: "22:00", End: "07:00"}
		r.Frequency = entity.FrequencyDaily
	})

	got := Evaluate(rec, entity.CategoryMarketing, onDay(23, 0))
	if got.Eligible {
		t.Fatal("disabled category must suppress")
	}
	if got.NextEligibleAt != nil {
		t.Errorf("category suppression must win over deferral gates, got retry at %v", got.NextEligibleAt)
	}

	// Quiet hours outrank frequency: the retry time is the window end,
	// not the digest boundary.
	rec.Categories.Marketing = true
	got = Evaluate(rec, entity.CategoryMarketing, onDay(23, 0))
	want := time.Date(2025, 6, 12, 7, 0, 0, 0, time.Local)
	if got.NextEligibleAt == nil || !got.NextEligibleAt.Equal(want) {
		t.Errorf("NextEligibleAt = %v, want quiet-hours end %v", got.NextEligibleAt, want)
	}
}
