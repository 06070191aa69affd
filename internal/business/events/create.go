package events

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avasiliev/personal-planner-backend/internal/model"
)

func (s *Service) CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error) {
	event := &model.Event{
		Excluded:    map[string]struct{}{},
		EventCreate: *info,
	}

	id, err := s.eventsRepository.CreateEvent(ctx, s.db, event)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.CreateEvent: %w", err)
	}

	event.ID = strconv.FormatInt(id, 10)
	return event, nil
}
