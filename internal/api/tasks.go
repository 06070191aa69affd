package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/avasiliev/personal-planner-backend/internal/pkg/validator"
)

type taskListRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type taskListResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

type taskRequest struct {
	Title    string `json:"title"`
	Note     string `json:"note"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date"`
	Done     bool   `json:"done"`
}

type taskResponse struct {
	ID        int64  `json:"id"`
	ListID    int64  `json:"list_id"`
	Title     string `json:"title"`
	Note      string `json:"note,omitempty"`
	Priority  string `json:"priority"`
	DueDate   string `json:"due_date,omitempty"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func mapToTaskListResponse(l *model.TaskList) *taskListResponse {
	return &taskListResponse{
		ID:        l.ID,
		Name:      l.Name,
		Kind:      l.Kind.String(),
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

func mapToTaskResponse(t *model.Task) *taskResponse {
	resp := &taskResponse{
		ID:        t.ID,
		ListID:    t.ListID,
		Title:     t.Title,
		Note:      t.Note,
		Priority:  t.Priority.String(),
		Done:      t.Done,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		resp.DueDate = model.FormatDate(*t.DueDate)
	}

	return resp
}

func (a *Api) mapToTaskCreate(req *taskRequest, listID int64, v *validator.Validator) *model.TaskCreate {
	v.Check(req.Title != "", "title", "must be provided")

	priority, err := model.ParsePriority(req.Priority)
	v.Check(err == nil, "priority", "must be one of low, medium, high")

	var dueDate *time.Time
	if req.DueDate != "" {
		date, err := model.ParseDate(req.DueDate)
		v.Check(err == nil, "due_date", "must be a date in YYYY-MM-DD format")
		dueDate = &date
	}

	if !v.Valid() {
		return nil
	}

	return &model.TaskCreate{
		ListID:   listID,
		Title:    req.Title,
		Note:     req.Note,
		Priority: priority,
		DueDate:  dueDate,
	}
}

func (a *Api) createListHandler(w http.ResponseWriter, r *http.Request) {
	req := &taskListRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.Name != "", "name", "must be provided")
	kind, err := model.ParseTaskListKind(req.Kind)
	v.Check(err == nil, "kind", "must be one of todo, shopping")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	list, err := a.tasks.CreateList(r.Context(), &model.TaskListCreate{Name: req.Name, Kind: kind})
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToTaskListResponse(list), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getListsHandler(w http.ResponseWriter, r *http.Request) {
	lists, err := a.tasks.GetLists(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(lists, mapToTaskListResponse), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getListHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.idParam(r, "listID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	list, err := a.tasks.GetList(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	tasks, err := a.tasks.GetTasks(r.Context(), id)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp := struct {
		*taskListResponse
		Tasks []*taskResponse `json:"tasks"`
	}{
		taskListResponse: mapToTaskListResponse(list),
		Tasks:            mapSlice(tasks, mapToTaskResponse),
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateListHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.idParam(r, "listID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &taskListRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.Name != "", "name", "must be provided")
	kind, err := model.ParseTaskListKind(req.Kind)
	v.Check(err == nil, "kind", "must be one of todo, shopping")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	list, err := a.tasks.GetList(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	list.Name = req.Name
	list.Kind = kind
	if err := a.tasks.UpdateList(r.Context(), list); err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) deleteListHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.idParam(r, "listID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.tasks.DeleteList(r.Context(), id); err != nil {
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

func (a *Api) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	listID, err := a.idParam(r, "listID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &taskRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	info := a.mapToTaskCreate(req, listID, v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	task, err := a.tasks.CreateTask(r.Context(), info)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToTaskResponse(task), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.idParam(r, "taskID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &taskRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	info := a.mapToTaskCreate(req, 0, v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	task := &model.Task{ID: id, Done: req.Done, TaskCreate: *info}
	if err := a.tasks.UpdateTask(r.Context(), task); err != nil {
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

func (a *Api) toggleTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.idParam(r, "taskID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	task, err := a.tasks.ToggleTask(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToTaskResponse(task), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.idParam(r, "taskID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.tasks.DeleteTask(r.Context(), id); err != nil {
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

func (a *Api) clearCompletedHandler(w http.ResponseWriter, r *http.Request) {
	listID, err := a.idParam(r, "listID")
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.tasks.ClearCompleted(r.Context(), listID); err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
