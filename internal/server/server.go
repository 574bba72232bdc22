package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/kanban-backend/internal/service"
)

// HealthChecker reports backend health as a flat stats map.
type HealthChecker interface {
	Health() map[string]string
}

type Server struct {
	port    int
	kanban  service.KanbanService
	db      HealthChecker
	metrics *Metrics
	log     logrus.FieldLogger
}

func NewServer(port int, kanban service.KanbanService, db HealthChecker, metrics *Metrics, log logrus.FieldLogger) *http.Server {
	appServer := &Server{
		port:    port,
		kanban:  kanban,
		db:      db,
		metrics: metrics,
		log:     log,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
