package recurrence

import (
	"fmt"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/teambition/rrule-go"
)

// Rules are persisted as RRULE text so rows stay readable with standard
// calendar tooling. Expansion never runs off the RRULE directly: the walker
// in expand.go implements the clamping month semantics RRULE lacks.

var rruleWeekdays = [...]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// RuleString serializes a canonical rule for storage. The start date is kept
// in its own column, so the serialized rule deliberately carries no DTSTART:
// that keeps the stored text parseable by StrToROption on the way back.
func RuleString(r model.RecurrenceRule) (string, error) {
	if !r.Recurring() {
		return "", nil
	}

	var freq rrule.Frequency
	switch r.Freq {
	case model.FreqDaily:
		freq = rrule.DAILY
	case model.FreqWeekly:
		freq = rrule.WEEKLY
	case model.FreqMonthly:
		freq = rrule.MONTHLY
	default:
		return "", fmt.Errorf("unknown frequency: %v", r.Freq)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: r.Interval,
		Count:    r.Count,
	}

	for _, d := range r.DaysOfWeek {
		opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
	}
	if r.DayOfMonth > 0 {
		opt.Bymonthday = []int{r.DayOfMonth}
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("creating rule: %w", err)
	}

	return rule.String(), nil
}

// ParseRuleString restores a canonical rule from its stored RRULE form.
func ParseRuleString(s string) (model.RecurrenceRule, error) {
	if s == "" {
		return model.RecurrenceRule{}, nil
	}

	opt, err := rrule.StrToROption(s)
	if err != nil {
		return model.RecurrenceRule{}, fmt.Errorf("parse repeat rule %q: %w", s, err)
	}

	var freq model.Freq
	switch opt.Freq {
	case rrule.DAILY:
		freq = model.FreqDaily
	case rrule.WEEKLY:
		freq = model.FreqWeekly
	case rrule.MONTHLY:
		freq = model.FreqMonthly
	default:
		return model.RecurrenceRule{}, fmt.Errorf("unsupported frequency in rule %q", s)
	}

	rule := model.RecurrenceRule{
		Freq:     freq,
		Interval: opt.Interval,
		Count:    opt.Count,
	}
	if rule.Interval < 1 {
		rule.Interval = 1
	}

	for _, wd := range opt.Byweekday {
		// rrule counts weekdays from Monday, time.Weekday from Sunday.
		rule.DaysOfWeek = append(rule.DaysOfWeek, time.Weekday((wd.Day()+1)%7))
	}
	if len(opt.Bymonthday) > 0 {
		rule.DayOfMonth = opt.Bymonthday[0]
	}

	return Normalize(rule.Freq, rule.Count, &LegacyRule{
		Type:       rule.Freq,
		Interval:   rule.Interval,
		DaysOfWeek: weekdaysToInts(rule.DaysOfWeek),
		DayOfMonth: rule.DayOfMonth,
	}), nil
}

func weekdaysToInts(days []time.Weekday) []int {
	res := make([]int, len(days))
	for i, d := range days {
		res[i] = int(d)
	}
	return res
}
