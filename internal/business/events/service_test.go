package events

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avasiliev/personal-planner-backend/internal/calendar"
	"github.com/avasiliev/personal-planner-backend/internal/database"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type fakeDB struct{}

func (fakeDB) Exec(context.Context, sq.Sqlizer) (pgconn.CommandTag, error) { return nil, nil }
func (fakeDB) Get(context.Context, interface{}, sq.Sqlizer) error         { return nil }
func (fakeDB) Select(context.Context, interface{}, sq.Sqlizer) error      { return nil }
func (fakeDB) ExecRaw(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, nil
}
func (fakeDB) GetPool(context.Context) *pgxpool.Pool { return nil }
func (fakeDB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return fakeTx{}, nil
}

type fakeTx struct{ fakeDB }

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeRepo struct {
	nextID int64
	events map[int64]*model.Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: map[int64]*model.Event{}}
}

func copyEvent(e *model.Event) *model.Event {
	c := *e
	c.Excluded = make(map[string]struct{}, len(e.Excluded))
	for d := range e.Excluded {
		c.Excluded[d] = struct{}{}
	}
	return &c
}

func (r *fakeRepo) CreateEvent(_ context.Context, _ database.Queryable, event *model.Event) (int64, error) {
	r.nextID++
	stored := copyEvent(event)
	stored.ID = strconv.FormatInt(r.nextID, 10)
	r.events[r.nextID] = stored
	return r.nextID, nil
}

func (r *fakeRepo) GetEventByID(_ context.Context, _ database.Queryable, id int64) (*model.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return copyEvent(e), nil
}

func (r *fakeRepo) GetEvents(_ context.Context, _ database.Queryable, filter model.EventsFilter) ([]*model.Event, error) {
	var res []*model.Event
	for _, e := range r.events {
		if e.StartDate.After(filter.To) {
			continue
		}
		if !e.Rule.Recurring() && e.EndDate.Before(filter.From) {
			continue
		}
		if filter.Tag != "" && e.Tag != filter.Tag {
			continue
		}
		res = append(res, copyEvent(e))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *fakeRepo) UpdateEvent(_ context.Context, _ database.Queryable, id int64, event *model.Event) error {
	if _, ok := r.events[id]; !ok {
		return model.ErrNoRecord
	}
	stored := copyEvent(event)
	stored.ID = strconv.FormatInt(id, 10)
	r.events[id] = stored
	return nil
}

func (r *fakeRepo) DeleteEvent(_ context.Context, _ database.Queryable, id int64) error {
	if _, ok := r.events[id]; !ok {
		return model.ErrNoRecord
	}
	delete(r.events, id)
	return nil
}

func (r *fakeRepo) DeleteExceptions(_ context.Context, _ database.Queryable, originalID int64) error {
	ref := strconv.FormatInt(originalID, 10)
	for id, e := range r.events {
		if e.OriginalEventID == ref {
			delete(r.events, id)
		}
	}
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	s := NewService(fakeDB{}, repo)
	s.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	}
	return s
}

func testInfo(t *testing.T, title, start string, rule model.RecurrenceRule) *model.EventCreate {
	t.Helper()

	date, err := model.ParseDate(start)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}

	return &model.EventCreate{
		Title:     title,
		StartDate: date,
		EndDate:   date,
		StartTime: model.TimeOfDay(9 * 60),
		EndTime:   model.TimeOfDay(10 * 60),
		Rule:      rule,
	}
}

func window(t *testing.T, from, to string) []calendar.DateColumn {
	t.Helper()

	fromDate, err := model.ParseDate(from)
	if err != nil {
		t.Fatalf("parse from: %v", err)
	}
	toDate, err := model.ParseDate(to)
	if err != nil {
		t.Fatalf("parse to: %v", err)
	}

	return calendar.Range(fromDate, toDate, func() time.Time { return fromDate })
}

func TestCreateEvent(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	event, err := s.CreateEvent(context.Background(), testInfo(t, "dentist", "2024-01-10", model.RecurrenceRule{}))
	if err != nil {
		t.Fatalf("CreateEvent() error: %v", err)
	}
	if event.ID != "1" {
		t.Errorf("id = %q, want %q", event.ID, "1")
	}
	if event.Excluded == nil {
		t.Error("new event should start with an empty exclusion set")
	}
}

func TestGetEvents(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	ctx := context.Background()

	if _, err := s.CreateEvent(ctx, testInfo(t, "daily standup", "2024-01-01", model.RecurrenceRule{
		Freq: model.FreqDaily, Interval: 1,
	})); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateEvent(ctx, testInfo(t, "dentist", "2024-01-02", model.RecurrenceRule{})); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetEvents(ctx, window(t, "2024-01-01", "2024-01-03"))
	if err != nil {
		t.Fatalf("GetEvents() error: %v", err)
	}

	// One standup instance per scanned day (window padded by a day on each
	// side, but the series only starts on the 1st) plus the one-shot event.
	var titles []string
	for _, e := range got {
		titles = append(titles, model.FormatDate(e.StartDate)+" "+e.Title)
	}
	want := []string{
		"2024-01-01 daily standup",
		"2024-01-02 daily standup",
		"2024-01-02 dentist",
		"2024-01-03 daily standup",
		"2024-01-04 daily standup",
	}
	if len(titles) != len(want) {
		t.Fatalf("got %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestGetEventOccurrence(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, testInfo(t, "standup", "2024-01-01", model.RecurrenceRule{
		Freq: model.FreqDaily, Interval: 2,
	}))
	if err != nil {
		t.Fatal(err)
	}
	baseID, _ := strconv.ParseInt(created.ID, 10, 64)

	t.Run("series reference", func(t *testing.T) {
		got, err := s.GetEventOccurrence(ctx, model.EventRef{BaseID: baseID})
		if err != nil {
			t.Fatalf("GetEventOccurrence() error: %v", err)
		}
		if got.ID != created.ID {
			t.Errorf("id = %q, want %q", got.ID, created.ID)
		}
	})

	t.Run("produced occurrence", func(t *testing.T) {
		date, _ := model.ParseDate("2024-01-03")
		got, err := s.GetEventOccurrence(ctx, model.EventRef{BaseID: baseID, Date: date})
		if err != nil {
			t.Fatalf("GetEventOccurrence() error: %v", err)
		}
		if got.ID != created.ID+"-2024-01-03" {
			t.Errorf("id = %q, want %q", got.ID, created.ID+"-2024-01-03")
		}
	})

	t.Run("date the series skips", func(t *testing.T) {
		date, _ := model.ParseDate("2024-01-02")
		if _, err := s.GetEventOccurrence(ctx, model.EventRef{BaseID: baseID, Date: date}); !errors.Is(err, model.ErrNoRecord) {
			t.Errorf("err = %v, want ErrNoRecord", err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		if _, err := s.GetEventOccurrence(ctx, model.EventRef{BaseID: 99}); !errors.Is(err, model.ErrNoRecord) {
			t.Errorf("err = %v, want ErrNoRecord", err)
		}
	})
}

func TestUpdateEventAll(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, testInfo(t, "standup", "2024-01-01", model.RecurrenceRule{
		Freq: model.FreqDaily, Interval: 1,
	}))
	if err != nil {
		t.Fatal(err)
	}
	baseID, _ := strconv.ParseInt(created.ID, 10, 64)

	// Pre-existing exclusions must survive a whole-series edit.
	repo.events[baseID].Excluded["2024-01-05"] = struct{}{}

	info := testInfo(t, "renamed standup", "2024-01-01", model.RecurrenceRule{
		Freq: model.FreqDaily, Interval: 1,
	})
	if err := s.UpdateEvent(ctx, model.EventRef{BaseID: baseID}, model.EditScopeAll, info); err != nil {
		t.Fatalf("UpdateEvent() error: %v", err)
	}

	stored := repo.events[baseID]
	if stored.Title != "renamed standup" {
		t.Errorf("title = %q, want %q", stored.Title, "renamed standup")
	}
	if _, ok := stored.Excluded["2024-01-05"]; !ok {
		t.Error("whole-series edit should preserve exclusions")
	}
}

func TestUpdateEventSingle(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, testInfo(t, "standup", "2024-01-01", model.RecurrenceRule{
		Freq: model.FreqDaily, Interval: 1,
	}))
	if err != nil {
		t.Fatal(err)
	}
	baseID, _ := strconv.ParseInt(created.ID, 10, 64)

	date, _ := model.ParseDate("2024-01-03")
	info := testInfo(t, "moved standup", "2024-01-03", model.RecurrenceRule{
		Freq: model.FreqDaily, Interval: 1,
	})
	if err := s.UpdateEvent(ctx, model.EventRef{BaseID: baseID, Date: date}, model.EditScopeSingle, info); err != nil {
		t.Fatalf("UpdateEvent() error: %v", err)
	}

	base := repo.events[baseID]
	if _, ok := base.Excluded["2024-01-03"]; !ok {
		t.Error("edited occurrence should be excluded from the series")
	}
	if base.Title != "standup" {
		t.Errorf("series title = %q, should be untouched", base.Title)
	}

	var exception *model.Event
	for _, e := range repo.events {
		if e.OriginalEventID == created.ID {
			exception = e
		}
	}
	if exception == nil {
		t.Fatal("single-occurrence edit should create an exception event")
	}
	if exception.Title != "moved standup" {
		t.Errorf("exception title = %q, want %q", exception.Title, "moved standup")
	}
	if exception.Rule.Recurring() {
		t.Error("exception events must not recur on their own")
	}

	// The resolved view shows the exception instead of the original
	// occurrence.
	got, err := s.GetEvents(ctx, window(t, "2024-01-03", "2024-01-03"))
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, e := range got {
		if model.FormatDate(e.StartDate) == "2024-01-03" {
			titles = append(titles, e.Title)
		}
	}
	if len(titles) != 1 || titles[0] != "moved standup" {
		t.Errorf("titles on edited date = %v, want just the exception", titles)
	}
}

func TestUpdateEventSingleNonRecurring(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, testInfo(t, "dentist", "2024-01-10", model.RecurrenceRule{}))
	if err != nil {
		t.Fatal(err)
	}
	baseID, _ := strconv.ParseInt(created.ID, 10, 64)

	// Single scope on a one-shot event degrades to a plain overwrite.
	date, _ := model.ParseDate("2024-01-10")
	info := testInfo(t, "dentist moved", "2024-01-11", model.RecurrenceRule{})
	if err := s.UpdateEvent(ctx, model.EventRef{BaseID: baseID, Date: date}, model.EditScopeSingle, info); err != nil {
		t.Fatalf("UpdateEvent() error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("got %d events, want 1", len(repo.events))
	}
	if repo.events[baseID].Title != "dentist moved" {
		t.Errorf("title = %q, want %q", repo.events[baseID].Title, "dentist moved")
	}
}

func TestDeleteEventSingle(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, testInfo(t, "standup", "2024-01-01", model.RecurrenceRule{
		Freq: model.FreqDaily, Interval: 1,
	}))
	if err != nil {
		t.Fatal(err)
	}
	baseID, _ := strconv.ParseInt(created.ID, 10, 64)

	date, _ := model.ParseDate("2024-01-02")
	if err := s.DeleteEvent(ctx, model.EventRef{BaseID: baseID, Date: date}, model.EditScopeSingle); err != nil {
		t.Fatalf("DeleteEvent() error: %v", err)
	}

	base, ok := repo.events[baseID]
	if !ok {
		t.Fatal("series should survive a single-occurrence delete")
	}
	if _, ok := base.Excluded["2024-01-02"]; !ok {
		t.Error("deleted occurrence should be excluded")
	}

	got, err := s.GetEvents(ctx, window(t, "2024-01-02", "2024-01-02"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range got {
		if model.FormatDate(e.StartDate) == "2024-01-02" {
			t.Error("excluded occurrence should not be visible")
		}
	}
}

func TestDeleteEventAll(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)
	ctx := context.Background()

	created, err := s.CreateEvent(ctx, testInfo(t, "standup", "2024-01-01", model.RecurrenceRule{
		Freq: model.FreqDaily, Interval: 1,
	}))
	if err != nil {
		t.Fatal(err)
	}
	baseID, _ := strconv.ParseInt(created.ID, 10, 64)

	// Split off an occurrence first so the cascade has something to sweep.
	date, _ := model.ParseDate("2024-01-03")
	info := testInfo(t, "moved standup", "2024-01-03", model.RecurrenceRule{})
	if err := s.UpdateEvent(ctx, model.EventRef{BaseID: baseID, Date: date}, model.EditScopeSingle, info); err != nil {
		t.Fatal(err)
	}
	if len(repo.events) != 2 {
		t.Fatalf("got %d events before delete, want 2", len(repo.events))
	}

	if err := s.DeleteEvent(ctx, model.EventRef{BaseID: baseID}, model.EditScopeAll); err != nil {
		t.Fatalf("DeleteEvent() error: %v", err)
	}

	if len(repo.events) != 0 {
		t.Errorf("got %d events after delete, want none; series deletes sweep exceptions", len(repo.events))
	}
}
