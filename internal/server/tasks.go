package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/kanban-backend/internal/domain"
)

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.kanban.ListTasks(r.Context(), r.URL.Query().Get("boardId"))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	task, err := s.kanban.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTaskInput
	if !s.decodeJSON(w, r, &req) {
		return
	}

	task, err := s.kanban.CreateTask(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req domain.UpdateTaskInput
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.ID != "" && req.ID != id {
		respondWithError(w, http.StatusBadRequest, "Task ID in body does not match the URL")
		return
	}

	task, err := s.kanban.UpdateTask(r.Context(), id, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.kanban.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) moveTaskHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req domain.DragResult
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.TaskID != "" && req.TaskID != id {
		respondWithError(w, http.StatusBadRequest, "Task ID in body does not match the URL")
		return
	}
	req.TaskID = id

	res, err := s.kanban.MoveTask(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}
