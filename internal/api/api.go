package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/calendar"
	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger
	now     func() time.Time

	events        eventsService
	tasks         tasksService
	expenses      expensesService
	notes         notesService
	settings      settingsRepository
	notifications notificationRepository
}

type eventsService interface {
	CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error)
	GetEvents(ctx context.Context, window []calendar.DateColumn) ([]*model.Event, error)
	GetEventsBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error)
	GetEventOccurrence(ctx context.Context, ref model.EventRef) (*model.Event, error)
	UpdateEvent(ctx context.Context, ref model.EventRef, scope model.EditScope, info *model.EventCreate) error
	DeleteEvent(ctx context.Context, ref model.EventRef, scope model.EditScope) error
}

type tasksService interface {
	CreateList(ctx context.Context, info *model.TaskListCreate) (*model.TaskList, error)
	GetList(ctx context.Context, id int64) (*model.TaskList, error)
	GetLists(ctx context.Context) ([]*model.TaskList, error)
	UpdateList(ctx context.Context, list *model.TaskList) error
	DeleteList(ctx context.Context, id int64) error
	CreateTask(ctx context.Context, info *model.TaskCreate) (*model.Task, error)
	GetTasks(ctx context.Context, listID int64) ([]*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	ToggleTask(ctx context.Context, id int64) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ClearCompleted(ctx context.Context, listID int64) error
}

type expensesService interface {
	CreateExpense(ctx context.Context, info *model.ExpenseCreate) (*model.Expense, error)
	GetExpenses(ctx context.Context, filter model.ExpensesFilter) ([]*model.Expense, error)
	UpdateExpense(ctx context.Context, expense *model.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	GetStats(ctx context.Context, filter model.ExpensesFilter) (*model.ExpenseStats, error)
}

type notesService interface {
	CreateNote(ctx context.Context, info *model.NoteCreate) (*model.Note, error)
	GetNote(ctx context.Context, id string) (*model.Note, error)
	GetNotes(ctx context.Context) ([]*model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id string) error
	ExportZip(ctx context.Context, w io.Writer) error
}

type settingsRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
}

type notificationRepository interface {
	Drain(ctx context.Context) ([]*model.Notification, error)
}

func NewApi(
	logger *zap.SugaredLogger,
	events eventsService,
	tasks tasksService,
	expenses expensesService,
	notes notesService,
	settings settingsRepository,
	notifications notificationRepository,
) *Api {
	a := &Api{
		logger:        logger,
		now:           time.Now,
		events:        events,
		tasks:         tasks,
		expenses:      expenses,
		notes:         notes,
		settings:      settings,
		notifications: notifications,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes, a.metrics)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/events", func(r chi.Router) {
		r.Get("/", a.getEventsHandler)
		r.Post("/", a.createEventHandler)
		r.Get("/export", a.exportEventsHandler)
		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", a.getEventHandler)
			r.Put("/", a.updateEventHandler)
			r.Delete("/", a.deleteEventHandler)
		})
	})

	r.Route("/lists", func(r chi.Router) {
		r.Get("/", a.getListsHandler)
		r.Post("/", a.createListHandler)
		r.Route("/{listID}", func(r chi.Router) {
			r.Get("/", a.getListHandler)
			r.Put("/", a.updateListHandler)
			r.Delete("/", a.deleteListHandler)
			r.Post("/tasks", a.createTaskHandler)
			r.Delete("/completed", a.clearCompletedHandler)
		})
	})

	r.Route("/tasks/{taskID}", func(r chi.Router) {
		r.Put("/", a.updateTaskHandler)
		r.Delete("/", a.deleteTaskHandler)
		r.Post("/toggle", a.toggleTaskHandler)
	})

	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", a.getExpensesHandler)
		r.Post("/", a.createExpenseHandler)
		r.Get("/stats", a.getExpenseStatsHandler)
		r.Route("/{expenseID}", func(r chi.Router) {
			r.Put("/", a.updateExpenseHandler)
			r.Delete("/", a.deleteExpenseHandler)
		})
	})

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", a.getNotesHandler)
		r.Post("/", a.createNoteHandler)
		r.Get("/export", a.exportNotesHandler)
		r.Route("/{noteID}", func(r chi.Router) {
			r.Get("/", a.getNoteHandler)
			r.Put("/", a.updateNoteHandler)
			r.Delete("/", a.deleteNoteHandler)
		})
	})

	r.Route("/settings/{key}", func(r chi.Router) {
		r.Get("/", a.getSettingHandler)
		r.Put("/", a.putSettingHandler)
	})

	r.Get("/notifications", a.getNotificationsHandler)
	r.Get("/qr", a.qrHandler)

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
