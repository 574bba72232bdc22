package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.healthHandler)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/boards", func(r chi.Router) {
		r.Get("/", s.listBoardsHandler)
		r.Post("/", s.createBoardHandler)
		r.Get("/{id}", s.getBoardHandler)
		r.Put("/{id}", s.updateBoardHandler)
		r.Delete("/{id}", s.deleteBoardHandler)
		r.Get("/{id}/orphans", s.orphanedTasksHandler)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.listTasksHandler)
		r.Post("/", s.createTaskHandler)
		r.Get("/{id}", s.getTaskHandler)
		r.Put("/{id}", s.updateTaskHandler)
		r.Delete("/{id}", s.deleteTaskHandler)
		r.Post("/{id}/move", s.moveTaskHandler)
	})

	r.Get("/selection", s.getSelectionHandler)
	r.Put("/selection/{id}", s.putSelectionHandler)
	r.Get("/pending", s.pendingHandler)

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) getSelectionHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.kanban.ActiveBoard(r.Context()))
}

func (s *Server) putSelectionHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.kanban.SelectBoard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (s *Server) pendingHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.kanban.PendingMutations(r.Context())
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}
