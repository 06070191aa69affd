package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/avasiliev/personal-planner-backend/internal/model"
	"github.com/go-chi/chi/v5"
)

// Settings are opaque to the server. Blobs are stored and returned verbatim,
// the only requirement is that they are valid JSON.
func (a *Api) getSettingHandler(w http.ResponseWriter, r *http.Request) {
	blob, err := a.settings.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(blob); err != nil {
		a.logError(r, err)
	}
}

func (a *Api) putSettingHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if !json.Valid(blob) {
		a.badRequestResponse(w, r, errors.New("body must be valid JSON"))
		return
	}

	if err := a.settings.Set(r.Context(), chi.URLParam(r, "key"), blob); err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
