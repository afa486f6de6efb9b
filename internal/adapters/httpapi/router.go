package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"qrattend/internal/domain/entities"
	"qrattend/internal/ports/input"
)

// Router serves a read-only view of the attendance table.
type Router struct {
	attendance input.AttendanceUseCase
	sync       input.SyncUseCase
}

func NewRouter(attendance input.AttendanceUseCase, sync input.SyncUseCase) *Router {
	return &Router{attendance: attendance, sync: sync}
}

func (rt *Router) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/status", rt.status).Methods(http.MethodGet)
	r.HandleFunc("/attendees/{id}", rt.attendee).Methods(http.MethodGet)
	return r
}

type statusResponse struct {
	entities.Summary
	LastSync     *time.Time `json:"last_sync,omitempty"`
	UpdatedCells int        `json:"last_updated_cells"`
}

func (rt *Router) status(w http.ResponseWriter, r *http.Request) {
	res := statusResponse{Summary: rt.attendance.Summary()}
	if rt.sync != nil {
		last := rt.sync.LastResult()
		if !last.At.IsZero() {
			res.LastSync = &last.At
			res.UpdatedCells = last.UpdatedCells
		}
	}
	WriteJSON(w, http.StatusOK, res)
}

type attendeeResponse struct {
	RegistrationID string `json:"registration_id"`
	Name           string `json:"name"`
	Present        bool   `json:"present"`
	TimeStamp      string `json:"time_stamp,omitempty"`
}

func (rt *Router) attendee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, ok := rt.attendance.Lookup(id)
	if !ok {
		WriteError(w, errors.New("registration id not found"), http.StatusNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, attendeeResponse{
		RegistrationID: rec.RegistrationID,
		Name:           rec.Name,
		Present:        rec.IsPresent(),
		TimeStamp:      rec.TimeStamp,
	})
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, err error, status int) {
	WriteJSON(w, status, map[string]string{"error": err.Error()})
}
