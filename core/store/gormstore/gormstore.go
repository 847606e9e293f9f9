// Package gormstore is the SQL Store backend. The driver (mysql or
// postgres) is chosen from configuration; uniqueness of (user_id, date) is
// enforced by composite unique indexes, which makes Create a true
// conditional insert.
package gormstore

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

type Store struct {
	db *gorm.DB
}

// Open connects to the database. driver is "mysql" or "postgres".
func Open(driver, dsn string, logLevel logger.LogLevel) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &Store{db: db}, nil
}

// NewWithDB wraps an already-open gorm handle, used by tests and tools.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the InternTrack tables.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&model.User{},
		&model.AttendanceRecord{},
		&model.Break{},
		&model.DailyReport{},
		&model.Screenshot{},
	)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Attendance() store.AttendanceStore  { return &attendanceStore{db: s.db} }
func (s *Store) Users() store.UserStore             { return &userStore{db: s.db} }
func (s *Store) Reports() store.ReportStore         { return &reportStore{db: s.db} }
func (s *Store) Screenshots() store.ScreenshotStore { return &screenshotStore{db: s.db} }

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	default:
		return err
	}
}
