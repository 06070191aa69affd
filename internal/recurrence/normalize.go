package recurrence

import (
	"sort"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/model"
)

// LegacyRule mirrors the richer recurrence shape older clients still send.
// When present it wins over the simple repeat type / repeat limit pair for
// interval and day constraints.
type LegacyRule struct {
	Type       model.Freq
	Interval   int
	DaysOfWeek []int
	DayOfMonth int
}

// Normalize folds the two client recurrence shapes into the single canonical
// model.RecurrenceRule. It never fails: malformed values degrade to defaults
// (interval 1, no day constraints) instead of producing an error.
func Normalize(freq model.Freq, limit int, legacy *LegacyRule) model.RecurrenceRule {
	rule := model.RecurrenceRule{
		Freq:     freq,
		Interval: 1,
	}

	if legacy != nil && legacy.Type != model.FreqNone {
		rule.Freq = legacy.Type
		if legacy.Interval > 0 {
			rule.Interval = legacy.Interval
		}
		rule.DaysOfWeek = normalizeDays(legacy.DaysOfWeek)
		if legacy.DayOfMonth >= 1 && legacy.DayOfMonth <= 31 {
			rule.DayOfMonth = legacy.DayOfMonth
		}
	}

	if rule.Freq == model.FreqNone {
		return model.RecurrenceRule{}
	}

	// Day constraints only make sense for their own frequency.
	if rule.Freq != model.FreqWeekly {
		rule.DaysOfWeek = nil
	}
	if rule.Freq != model.FreqMonthly {
		rule.DayOfMonth = 0
	}

	if limit > 0 {
		rule.Count = limit
	}

	return rule
}

func normalizeDays(days []int) []time.Weekday {
	seen := make(map[time.Weekday]struct{}, len(days))
	var res []time.Weekday

	for _, d := range days {
		if d < 0 || d > 6 {
			continue
		}
		wd := time.Weekday(d)
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		res = append(res, wd)
	}

	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}
