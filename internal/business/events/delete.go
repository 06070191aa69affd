package events

import (
	"context"
	"fmt"

	"github.com/avasiliev/personal-planner-backend/internal/model"
)

// DeleteEvent removes either one occurrence or the whole series. Deleting a
// single occurrence of a recurring event just records an exclusion; the
// series stops producing that date. Deleting the series removes the base
// event together with any exception events split off from it.
func (s *Service) DeleteEvent(ctx context.Context, ref model.EventRef, scope model.EditScope) error {
	if scope == model.EditScopeSingle && ref.Instance() {
		oldEvent, err := s.eventsRepository.GetEventByID(ctx, s.db, ref.BaseID)
		if err != nil {
			return fmt.Errorf("get old event: %w", err)
		}

		if oldEvent.Rule.Recurring() {
			if oldEvent.Excluded == nil {
				oldEvent.Excluded = map[string]struct{}{}
			}
			oldEvent.Excluded[model.FormatDate(ref.Date)] = struct{}{}

			if err := s.eventsRepository.UpdateEvent(ctx, s.db, ref.BaseID, oldEvent); err != nil {
				return fmt.Errorf("eventsRepository.UpdateEvent: %w", err)
			}

			return nil
		}
		// A one-shot event has no other occurrences to preserve.
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.eventsRepository.DeleteExceptions(ctx, tx, ref.BaseID); err != nil {
		return fmt.Errorf("eventsRepository.DeleteExceptions: %w", err)
	}
	if err := s.eventsRepository.DeleteEvent(ctx, tx, ref.BaseID); err != nil {
		return fmt.Errorf("eventsRepository.DeleteEvent: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
