package api

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/calendar"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/avasiliev/personal-planner-backend/internal/pkg/validator"
	"github.com/avasiliev/personal-planner-backend/internal/recurrence"
	"github.com/gerow/go-color"
)

const defaultEventColor = "#4a76a8"

type recurringRequest struct {
	Type       string `json:"type"`
	Interval   int    `json:"interval"`
	DaysOfWeek []int  `json:"days_of_week"`
	DayOfMonth int    `json:"day_of_month"`
}

type eventRequest struct {
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Tag         string            `json:"tag"`
	Color       string            `json:"color"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	RepeatType  string            `json:"repeat_type"`
	RepeatLimit int               `json:"repeat_limit"`
	Recurring   *recurringRequest `json:"recurring"`
	Reminders   []int             `json:"reminders"`
}

type eventResponse struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content,omitempty"`
	Tag             string   `json:"tag,omitempty"`
	Color           string   `json:"color"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	RepeatType      string   `json:"repeat_type"`
	RepeatLimit     int      `json:"repeat_limit,omitempty"`
	Interval        int      `json:"interval,omitempty"`
	DaysOfWeek      []int    `json:"days_of_week,omitempty"`
	DayOfMonth      int      `json:"day_of_month,omitempty"`
	ExcludedDates   []string `json:"excluded_dates,omitempty"`
	OriginalEventID string   `json:"original_event_id,omitempty"`
	Reminders       []int    `json:"reminders,omitempty"`
}

type gridEventResponse struct {
	*eventResponse
	Top          int  `json:"top"`
	Height       int  `json:"height"`
	Continuation bool `json:"continuation"`
}

type gridColumnResponse struct {
	Date    string               `json:"date"`
	IsToday bool                 `json:"is_today"`
	Events  []*gridEventResponse `json:"events"`
}

func (a *Api) mapToEventCreate(req *eventRequest, v *validator.Validator) *model.EventCreate {
	v.Check(req.Title != "", "title", "must be provided")

	if req.Color == "" {
		req.Color = defaultEventColor
	}
	rgb, err := color.HTMLToRGB(strings.TrimPrefix(req.Color, "#"))
	v.Check(err == nil, "color", "must be a hex color")

	startDate, err := model.ParseDate(req.StartDate)
	v.Check(err == nil, "start_date", "must be a date in YYYY-MM-DD format")
	endDate, err := model.ParseDate(req.EndDate)
	v.Check(err == nil, "end_date", "must be a date in YYYY-MM-DD format")

	startTime, err := model.ParseTimeOfDay(req.StartTime)
	v.Check(err == nil, "start_time", "must be a time in HH:MM format")
	endTime, err := model.ParseTimeOfDay(req.EndTime)
	v.Check(err == nil, "end_time", "must be a time in HH:MM format")

	freq, err := model.ParseFreq(req.RepeatType)
	v.Check(err == nil, "repeat_type", "must be one of none, daily, weekly, monthly")
	v.Check(req.RepeatLimit >= 0, "repeat_limit", "must not be negative")

	var legacy *recurrence.LegacyRule
	if req.Recurring != nil {
		legacyFreq, err := model.ParseFreq(req.Recurring.Type)
		v.Check(err == nil, "recurring.type", "must be one of none, daily, weekly, monthly")
		legacy = &recurrence.LegacyRule{
			Type:       legacyFreq,
			Interval:   req.Recurring.Interval,
			DaysOfWeek: req.Recurring.DaysOfWeek,
			DayOfMonth: req.Recurring.DayOfMonth,
		}
	}

	reminders := make([]time.Duration, 0, len(req.Reminders))
	for _, m := range req.Reminders {
		v.Check(m >= 0, "reminders", "must not contain negative values")
		reminders = append(reminders, time.Duration(m)*time.Minute)
	}

	if !v.Valid() {
		return nil
	}

	info := &model.EventCreate{
		Title:     req.Title,
		Content:   req.Content,
		Tag:       req.Tag,
		Color:     rgb,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
		Rule:      recurrence.Normalize(freq, req.RepeatLimit, legacy),
		Reminders: reminders,
	}

	v.Check(info.EndInstant().After(info.StartInstant()), "end_time", "event must end after it starts")
	if !v.Valid() {
		return nil
	}

	return info
}

func mapToEventResponse(e *model.Event) *eventResponse {
	resp := &eventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Content:         e.Content,
		Tag:             e.Tag,
		Color:           "#" + e.Color.ToHTML(),
		StartDate:       model.FormatDate(e.StartDate),
		EndDate:         model.FormatDate(e.EndDate),
		StartTime:       e.StartTime.String(),
		EndTime:         e.EndTime.String(),
		RepeatType:      e.Rule.Freq.String(),
		RepeatLimit:     e.Rule.Count,
		DayOfMonth:      e.Rule.DayOfMonth,
		OriginalEventID: e.OriginalEventID,
	}

	if e.Rule.Recurring() {
		resp.Interval = e.Rule.Interval
	}
	for _, d := range e.Rule.DaysOfWeek {
		resp.DaysOfWeek = append(resp.DaysOfWeek, int(d))
	}
	for date := range e.Excluded {
		resp.ExcludedDates = append(resp.ExcludedDates, date)
	}
	sort.Strings(resp.ExcludedDates)
	for _, lead := range e.Reminders {
		resp.Reminders = append(resp.Reminders, int(lead/time.Minute))
	}

	return resp
}

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	req := &eventRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	info := a.mapToEventCreate(req, v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	event, err := a.events.CreateEvent(r.Context(), info)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToEventResponse(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
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

	if haveFrom && haveTo {
		events, err := a.events.GetEventsBetween(r.Context(), from, to)
		if err != nil {
			a.serverErrorResponse(w, r, err)
			return
		}

		if err := a.writeJSON(w, http.StatusOK, mapSlice(events, mapToEventResponse), nil); err != nil {
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	view, err := calendar.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	anchor, haveAnchor, err := a.dateQuery(r, "date")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}
	if !haveAnchor {
		anchor = a.now()
	}

	columns := calendar.Columns(view, anchor, a.now)

	events, err := a.events.GetEvents(r.Context(), columns)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	grid := make([]*gridColumnResponse, 0, len(columns))
	for _, col := range columns {
		out := &gridColumnResponse{
			Date:    col.DateString,
			IsToday: col.IsToday,
			Events:  []*gridEventResponse{},
		}
		for _, e := range events {
			placement, ok := calendar.Layout(e, col.DateString)
			if !ok {
				continue
			}
			out.Events = append(out.Events, &gridEventResponse{
				eventResponse: mapToEventResponse(e),
				Top:           placement.Top,
				Height:        placement.Height,
				Continuation:  calendar.Role(e, col.DateString) == calendar.ColumnRoleContinuation,
			})
		}
		grid = append(grid, out)
	}

	if err := a.writeJSON(w, http.StatusOK, grid, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) eventRef(r *http.Request) (model.EventRef, error) {
	id, err := a.idParam(r, "eventID")
	if err != nil {
		return model.EventRef{}, err
	}

	date, _, err := a.dateQuery(r, "date")
	if err != nil {
		return model.EventRef{}, err
	}

	return model.EventRef{BaseID: id, Date: date}, nil
}

func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := a.eventRef(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	event, err := a.events.GetEventOccurrence(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToEventResponse(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateEventHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := a.eventRef(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	scope, ok := model.ParseEditScope(r.URL.Query().Get("scope"))
	if !ok {
		a.badRequestResponse(w, r, errors.New("invalid scope parameter, expected all or single"))
		return
	}

	req := &eventRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	info := a.mapToEventCreate(req, v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := a.events.UpdateEvent(r.Context(), ref, scope, info); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	ref, err := a.eventRef(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	scope, ok := model.ParseEditScope(r.URL.Query().Get("scope"))
	if !ok {
		a.badRequestResponse(w, r, errors.New("invalid scope parameter, expected all or single"))
		return
	}

	if err := a.events.DeleteEvent(r.Context(), ref, scope); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
