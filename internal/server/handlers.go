package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/push/internal/models"
	"github.com/claude/push/internal/rotation"
	"github.com/claude/push/internal/state"
	"github.com/go-chi/chi/v5"
)

// maxImportBytes caps the size of an uploaded export.
const maxImportBytes = 10 << 20

type fieldRequest struct {
	Value *float64 `json:"value"`
}

type completedRequest struct {
	Completed bool `json:"completed"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"loaded":   s.state.Loaded(),
		"rotation": s.rotator.Phase().String(),
	})
}

func (s *Server) handleGetAllWorkouts(w http.ResponseWriter, r *http.Request) {
	t, err := s.state.Triple()
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	slot, err := models.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	t, err := s.state.Triple()
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	switch slot {
	case models.SlotPrevious:
		writeJSON(w, http.StatusOK, t.Previous)
	case models.SlotCurrent:
		writeJSON(w, http.StatusOK, t.Current)
	case models.SlotNext:
		writeJSON(w, http.StatusOK, t.Next)
	}
}

func (s *Server) handleExerciseViews(w http.ResponseWriter, r *http.Request) {
	views, err := s.state.Views(chi.URLParam(r, "exerciseID"))
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleUpdateCurrentField(w http.ResponseWriter, r *http.Request) {
	name, ok := fieldParam(w, r)
	if !ok {
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	set, err := s.state.UpdateCurrentField(r.Context(),
		chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"), name, req.Value)
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleConfirmCurrentField(w http.ResponseWriter, r *http.Request) {
	name, ok := fieldParam(w, r)
	if !ok {
		return
	}
	set, err := s.state.ConfirmCurrentField(r.Context(),
		chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"), name)
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleSetCompleted(w http.ResponseWriter, r *http.Request) {
	var req completedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	set, err := s.state.SetCompleted(r.Context(),
		chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"), req.Completed)
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	set, err := s.state.AddSet(r.Context(), chi.URLParam(r, "exerciseID"))
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	if err := s.state.RemoveSet(r.Context(), chi.URLParam(r, "exerciseID")); err != nil {
		s.writeStateError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateNextField(w http.ResponseWriter, r *http.Request) {
	name, ok := fieldParam(w, r)
	if !ok {
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	set, err := s.state.UpdateNextField(r.Context(),
		chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"), name, req.Value)
	if err != nil {
		s.writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// handleForeground is called by the client each time the app becomes
// visible. It re-arms the rotation check and runs it.
func (s *Server) handleForeground(w http.ResponseWriter, r *http.Request) {
	s.rotator.Mount()
	out, err := s.rotator.Check(r.Context())
	switch {
	case errors.Is(err, rotation.ErrCheckInProgress), errors.Is(err, rotation.ErrAlreadyChecked):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	result, err := s.importer.Import(r.Context(), r.Body)
	if err != nil {
		if errors.Is(err, state.ErrNotLoaded) {
			s.writeStateError(w, err)
			return
		}
		s.log.Error("alpha import error", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func fieldParam(w http.ResponseWriter, r *http.Request) (models.FieldName, bool) {
	name, err := models.ParseFieldName(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return name, true
}

// writeStateError maps state errors to HTTP statuses.
func (s *Server) writeStateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, state.ErrExerciseNotFound), errors.Is(err, state.ErrSetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, state.ErrFieldNotPlannable), errors.Is(err, state.ErrUnknownField):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, state.ErrNothingToConfirm), errors.Is(err, state.ErrLastSet):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, state.ErrNotLoaded):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.log.Error("state error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
