package events

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/calendar"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/avasiliev/personal-planner-backend/internal/recurrence"
)

// GetEvents returns the resolved event instances visible in the window,
// sorted chronologically. Instances are derived fresh on every call and
// never stored.
func (s *Service) GetEvents(ctx context.Context, window []calendar.DateColumn) ([]*model.Event, error) {
	if len(window) == 0 {
		return nil, nil
	}

	filter := model.EventsFilter{
		From: window[0].Date.AddDate(0, 0, -1),
		To:   window[len(window)-1].Date.AddDate(0, 0, 1),
	}

	baseEvents, err := s.eventsRepository.GetEvents(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	res := recurrence.Resolve(recurrence.Expand(baseEvents, window))

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].StartInstant().Before(res[j].StartInstant())
	})

	return res, nil
}

// GetEventsBetween expands over an arbitrary day range; used by the ICS
// exporter and the reminder scanner.
func (s *Service) GetEventsBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	return s.GetEvents(ctx, calendar.Range(from, to, s.now))
}

// GetEventOccurrence resolves a reference to either the base series or one
// concrete occurrence of it. A reference to an occurrence that the series
// does not produce, or that has been excluded, yields ErrNoRecord.
func (s *Service) GetEventOccurrence(ctx context.Context, ref model.EventRef) (*model.Event, error) {
	event, err := s.eventsRepository.GetEventByID(ctx, s.db, ref.BaseID)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if !ref.Instance() {
		return event, nil
	}

	want := model.FormatDate(ref.Date)
	window := calendar.Range(ref.Date, ref.Date, s.now)

	for _, inst := range recurrence.Resolve(recurrence.Expand([]*model.Event{event}, window)) {
		if model.FormatDate(inst.StartDate) == want {
			return inst, nil
		}
	}

	return nil, model.ErrNoRecord
}
