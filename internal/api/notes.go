package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/avasiliev/personal-planner-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type noteRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags"`
	Pinned bool     `json:"pinned"`
}

type noteResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags,omitempty"`
	Pinned    bool     `json:"pinned"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func mapToNoteResponse(n *model.Note) *noteResponse {
	return &noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Tags:      n.Tags,
		Pinned:    n.Pinned,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.Format(time.RFC3339),
	}
}

func (a *Api) createNoteHandler(w http.ResponseWriter, r *http.Request) {
	req := &noteRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.Title != "", "title", "must be provided")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	note, err := a.notes.CreateNote(r.Context(), &model.NoteCreate{
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
		Pinned: req.Pinned,
	})
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToNoteResponse(note), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getNotesHandler(w http.ResponseWriter, r *http.Request) {
	notes, err := a.notes.GetNotes(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(notes, mapToNoteResponse), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, err := a.notes.GetNote(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToNoteResponse(note), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateNoteHandler(w http.ResponseWriter, r *http.Request) {
	req := &noteRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(req.Title != "", "title", "must be provided")
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	note := &model.Note{
		ID: chi.URLParam(r, "noteID"),
		NoteCreate: model.NoteCreate{
			Title:  req.Title,
			Body:   req.Body,
			Tags:   req.Tags,
			Pinned: req.Pinned,
		},
	}
	if err := a.notes.UpdateNote(r.Context(), note); err != nil {
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

func (a *Api) deleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.notes.DeleteNote(r.Context(), chi.URLParam(r, "noteID")); err != nil {
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

func (a *Api) exportNotesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="notes.zip"`)

	if err := a.notes.ExportZip(r.Context(), w); err != nil {
		a.logError(r, err)
	}
}
