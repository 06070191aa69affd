package api

import "net/http"

// getNotificationsHandler drains the queue of fired reminders. Reads are
// destructive, each notification is delivered exactly once.
func (a *Api) getNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	notifications, err := a.notifications.Drain(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, notifications, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
