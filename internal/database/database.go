package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Service exposes the gorm handle and pool health.
type Service interface {
	Health() map[string]string
	Close() error
	GetDB() *gorm.DB
}

type service struct {
	db   *gorm.DB
	name string
	log  logrus.FieldLogger
}

// Config holds the postgres connection settings.
type Config struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// DSN renders the connection string understood by the pgx driver.
func (c Config) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, sslmode)
	if c.Schema != "" {
		dsn += " search_path=" + c.Schema
	}
	return dsn
}

// New opens the connection pool. SQL statements are logged through log.
func New(cfg Config, log logrus.FieldLogger) (Service, error) {
	gormLogger := logger.New(
		log,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(log),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("connect to database %s: %w", cfg.Database, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &service{db: db, name: cfg.Database, log: log}, nil
}

func gormLogLevel(log logrus.FieldLogger) logger.LogLevel {
	l, ok := log.(*logrus.Logger)
	if !ok {
		return logger.Warn
	}
	switch {
	case l.IsLevelEnabled(logrus.DebugLevel):
		return logger.Info
	case l.IsLevelEnabled(logrus.WarnLevel):
		return logger.Warn
	default:
		return logger.Error
	}
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Health pings the database and reports pool statistics. A failed ping
// reports status "down" with the cause.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err != nil {
		s.log.WithError(err).Error("Health check could not reach the connection pool")
		return map[string]string{"status": "down", "error": fmt.Sprintf("connection pool unavailable: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		s.log.WithError(err).WithField("database", s.name).Warn("Database ping failed")
		return map[string]string{"status": "down", "error": fmt.Sprintf("ping %s: %v", s.name, err)}
	}
	return poolReport(sqlDB.Stats())
}

const (
	healthTimeout   = time.Second
	busyConnections = 80
	busyWaitCount   = 1000
)

func poolReport(st sql.DBStats) map[string]string {
	report := map[string]string{
		"status":              "up",
		"message":             "It's healthy",
		"open_connections":    strconv.Itoa(st.OpenConnections),
		"in_use":              strconv.Itoa(st.InUse),
		"idle":                strconv.Itoa(st.Idle),
		"wait_count":          strconv.FormatInt(st.WaitCount, 10),
		"wait_duration":       st.WaitDuration.String(),
		"max_idle_closed":     strconv.FormatInt(st.MaxIdleClosed, 10),
		"max_lifetime_closed": strconv.FormatInt(st.MaxLifetimeClosed, 10),
	}
	switch {
	case st.WaitCount > busyWaitCount:
		report["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	case st.OpenConnections > busyConnections:
		report["message"] = "The database is experiencing heavy load."
	}
	return report
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}
	s.log.WithField("database", s.name).Info("Closing database connection pool")
	return sqlDB.Close()
}
