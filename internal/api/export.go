package api

import (
	"errors"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/avasiliev/personal-planner-backend/internal/calendar"
	"github.com/avasiliev/personal-planner-backend/internal/model"
)

// instanceEnd resolves the concrete end instant of a rendered occurrence.
// Occurrences keep the series' end date verbatim, so the end is derived from
// the occurrence's own date plus the wall-clock end time, rolling over to
// the next day for overnight events.
func instanceEnd(e *model.Event) time.Time {
	end := e.StartDate.Add(time.Duration(e.EndTime) * time.Minute)
	if calendar.Overnight(e) {
		end = end.AddDate(0, 0, 1)
	}

	return end
}

func (a *Api) exportEventsHandler(w http.ResponseWriter, r *http.Request) {
	from, haveFrom, err := a.dateQuery(r, "from")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}
	to, haveTo, err := a.dateQuery(r, "to")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}
	if !haveFrom || !haveTo {
		a.badRequestResponse(w, r, errors.New("from and to parameters must be provided"))
		return
	}

	events, err := a.events.GetEventsBetween(r.Context(), from, to)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//personal-planner//EN")

	for _, e := range events {
		entry := cal.AddEvent(e.ID + "@personal-planner")
		entry.SetDtStampTime(a.now().UTC())
		entry.SetStartAt(e.StartInstant().UTC())
		entry.SetEndAt(instanceEnd(e).UTC())
		entry.SetSummary(e.Title)
		if e.Content != "" {
			entry.SetDescription(e.Content)
		}
		if e.Tag != "" {
			entry.SetProperty(ics.ComponentPropertyCategories, e.Tag)
		}
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	if _, err := w.Write([]byte(cal.Serialize())); err != nil {
		a.logError(r, err)
	}
}
