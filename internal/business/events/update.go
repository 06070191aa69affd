package events

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avasiliev/personal-planner-backend/internal/model"
)

// UpdateEvent applies an edit at the requested scope. Editing "all" (or a
// plain non-recurring event) overwrites the base event in place. Editing a
// single occurrence of a series splits it off: the occurrence date is added
// to the series' exclusions and the edited version is created as a
// standalone exception event referencing the series.
func (s *Service) UpdateEvent(ctx context.Context, ref model.EventRef, scope model.EditScope, info *model.EventCreate) error {
	oldEvent, err := s.eventsRepository.GetEventByID(ctx, s.db, ref.BaseID)
	if err != nil {
		return fmt.Errorf("get old event: %w", err)
	}

	if scope == model.EditScopeSingle && ref.Instance() && oldEvent.Rule.Recurring() {
		return s.updateOccurrence(ctx, ref, oldEvent, info)
	}

	updated := &model.Event{
		ID:              oldEvent.ID,
		OriginalEventID: oldEvent.OriginalEventID,
		Excluded:        oldEvent.Excluded,
		EventCreate:     *info,
	}

	if err := s.eventsRepository.UpdateEvent(ctx, s.db, ref.BaseID, updated); err != nil {
		return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	return nil
}

func (s *Service) updateOccurrence(ctx context.Context, ref model.EventRef, oldEvent *model.Event, info *model.EventCreate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if oldEvent.Excluded == nil {
		oldEvent.Excluded = map[string]struct{}{}
	}
	oldEvent.Excluded[model.FormatDate(ref.Date)] = struct{}{}

	if err := s.eventsRepository.UpdateEvent(ctx, tx, ref.BaseID, oldEvent); err != nil {
		return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
	}

	exception := &model.Event{
		OriginalEventID: strconv.FormatInt(ref.BaseID, 10),
		Excluded:        map[string]struct{}{},
		EventCreate:     *info,
	}
	// A split-off occurrence never repeats on its own.
	exception.Rule = model.RecurrenceRule{}

	if _, err := s.eventsRepository.CreateEvent(ctx, tx, exception); err != nil {
		return fmt.Errorf("eventsRepository.CreateEvent: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
