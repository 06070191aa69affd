package recurrence

import (
	"github.com/avasiliev/personal-planner-backend/internal/model"
)

// Resolve filters expanded instances against their series' exception set.
// Every instance carries its base event's excluded dates verbatim, so the
// check runs against the instance's own concrete start date. Exception
// events, the standalone replacements created by single-occurrence edits,
// are non-recurring and pass through Expand untouched, so nothing needs to
// be merged here.
func Resolve(instances []*model.Event) []*model.Event {
	res := make([]*model.Event, 0, len(instances))

	for _, inst := range instances {
		if len(inst.Excluded) > 0 {
			if _, ok := inst.Excluded[model.FormatDate(inst.StartDate)]; ok {
				continue
			}
		}
		res = append(res, inst)
	}

	return res
}
