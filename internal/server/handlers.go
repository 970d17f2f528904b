package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridpack/pkg/board"
	"github.com/matzehuels/gridpack/pkg/buildinfo"
	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
	"github.com/matzehuels/gridpack/pkg/planner"
)

// =============================================================================
// Requests
// =============================================================================

// boardRequest carries a board plus planner options.
type boardRequest struct {
	Board *board.Board `json:"board"`
	planner.Options
}

type snapRequest struct {
	Grid  grid.Dimensions `json:"grid"`
	X     float64         `json:"x"`
	Y     float64         `json:"y"`
	Limit int             `json:"limit,omitempty"`
}

type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code"`
}

// =============================================================================
// Engine
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var b board.Board
	if !s.decode(w, r, &b) {
		return
	}
	res, err := s.runner.Check(r.Context(), &b)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if !s.decodeBoardRequest(w, r, &req) {
		return
	}
	res, err := s.runner.Place(r.Context(), req.Board, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRepair(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if !s.decodeBoardRequest(w, r, &req) {
		return
	}
	if req.Policy == "" {
		req.Policy = s.policy
	}
	res, err := s.runner.Repair(r.Context(), req.Board, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSnap(w http.ResponseWriter, r *http.Request) {
	var req snapRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.runner.Snap(r.Context(), req.Grid, grid.PixelPosition{X: req.X, Y: req.Y}, planner.Options{Limit: req.Limit})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// =============================================================================
// Boards
// =============================================================================

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"boards": names})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handlePutBoard stores a board after checking it. The URL name wins over
// an empty body name; a conflicting body name is rejected.
func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var b board.Board
	if !s.decode(w, r, &b) {
		return
	}
	if b.Name == "" {
		b.Name = name
	}
	if b.Name != name {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidName,
			"board name %q does not match path %q", b.Name, name))
		return
	}
	if _, err := s.runner.Check(r.Context(), &b); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), &b); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddWidget(w http.ResponseWriter, r *http.Request) {
	var opts planner.Options
	if !s.decode(w, r, &opts) {
		return
	}
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Add(r.Context(), b, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), res.Board); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// =============================================================================
// Helpers
// =============================================================================

// decode reads a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func (s *Server) decodeBoardRequest(w http.ResponseWriter, r *http.Request, req *boardRequest) bool {
	if !s.decode(w, r, req) {
		return false
	}
	if req.Board == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "board is required"))
		return false
	}
	return true
}

// writeError maps err to a status via its code. Uncoded errors are logged
// and reported as internal errors without detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" || code == apperrors.ErrCodeInternal {
		s.logger.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: apperrors.ErrCodeInternal})
		return
	}
	writeJSON(w, apperrors.HTTPStatus(code), errorResponse{Error: apperrors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
