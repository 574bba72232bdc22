package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

func (s *Server) listBoardsHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.kanban.ListBoards(r.Context()))
}

func (s *Server) getBoardHandler(w http.ResponseWriter, r *http.Request) {
	board, err := s.kanban.GetBoard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, board)
}

func (s *Server) createBoardHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBoardInput
	if !s.decodeJSON(w, r, &req) {
		return
	}

	board, err := s.kanban.CreateBoard(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, board)
}

func (s *Server) updateBoardHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req domain.UpdateBoardInput
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.ID != "" && req.ID != id {
		respondWithError(w, http.StatusBadRequest, "Board ID in body does not match the URL")
		return
	}

	board, err := s.kanban.UpdateBoard(r.Context(), id, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, board)
}

func (s *Server) deleteBoardHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.kanban.DeleteBoard(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) orphanedTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.kanban.OrphanedTasks(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}
