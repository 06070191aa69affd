package events

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/avasiliev/personal-planner-backend/internal/recurrence"
	"github.com/gerow/go-color"
)

type eventDTO struct {
	ID              int64
	Title           string
	Content         string
	Tag             string
	Color           string
	StartDate       time.Time
	EndDate         time.Time
	StartTime       int
	EndTime         int
	RecurrenceRule  string
	ExcludedDates   []string
	OriginalEventID *int64
	Reminders       []int64
}

func mapToEvent(dto *eventDTO) (*model.Event, error) {
	rule, err := recurrence.ParseRuleString(dto.RecurrenceRule)
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", dto.ID, err)
	}

	rgb, err := color.HTMLToRGB(strings.TrimPrefix(dto.Color, "#"))
	if err != nil {
		// Stored colors are validated on the way in; fall back to black
		// rather than failing a whole listing on one bad row.
		rgb = color.RGB{}
	}

	excluded := make(map[string]struct{}, len(dto.ExcludedDates))
	for _, d := range dto.ExcludedDates {
		excluded[d] = struct{}{}
	}

	reminders := make([]time.Duration, len(dto.Reminders))
	for i, r := range dto.Reminders {
		reminders[i] = time.Duration(r)
	}

	originalID := ""
	if dto.OriginalEventID != nil {
		originalID = strconv.FormatInt(*dto.OriginalEventID, 10)
	}

	return &model.Event{
		ID:              strconv.FormatInt(dto.ID, 10),
		OriginalEventID: originalID,
		Excluded:        excluded,
		EventCreate: model.EventCreate{
			Title:     dto.Title,
			Content:   dto.Content,
			Tag:       dto.Tag,
			Color:     rgb,
			StartDate: model.Day(dto.StartDate.In(time.Local)),
			EndDate:   model.Day(dto.EndDate.In(time.Local)),
			StartTime: model.TimeOfDay(dto.StartTime),
			EndTime:   model.TimeOfDay(dto.EndTime),
			Rule:      rule,
			Reminders: reminders,
		},
	}, nil
}
