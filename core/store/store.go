// Package store defines the persistence contracts the InternTrack services
// depend on. Implementations live in gormstore (mysql/postgres) and memstore
// (in-memory with an optional JSON snapshot, used for development).
package store

import (
	"context"
	"errors"

	"interntrack.com/interntrack/core/model"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by the conditional Create operations when a
	// row already exists for the unique key, e.g. (userId, date).
	ErrDuplicate = errors.New("record already exists")
)

type AttendanceFilter struct {
	UserID   string
	Date     string
	FromDate string
	ToDate   string
	Status   model.AttendanceStatus
}

type ReportFilter struct {
	UserID   string
	Date     string
	FromDate string
	ToDate   string
	Status   model.ReportStatus
}

type UserFilter struct {
	Role     model.UserRole
	IsActive *bool
}

// AttendanceStore persists attendance records. Create must be atomic with
// respect to the (UserID, Date) uniqueness check so two concurrent clock-ins
// cannot both succeed.
type AttendanceStore interface {
	Create(ctx context.Context, rec *model.AttendanceRecord) error
	FindByID(ctx context.Context, id string) (*model.AttendanceRecord, error)
	FindByUserAndDate(ctx context.Context, userID, date string) (*model.AttendanceRecord, error)
	Update(ctx context.Context, rec *model.AttendanceRecord) error
	FindByUserID(ctx context.Context, userID string, limit int) ([]model.AttendanceRecord, error)
	FindAll(ctx context.Context, f AttendanceFilter) ([]model.AttendanceRecord, error)
}

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context, f UserFilter) ([]model.User, error)
}

// ReportStore persists daily reports. Create has the same conditional
// semantics as AttendanceStore.Create, keyed by (UserID, Date).
type ReportStore interface {
	Create(ctx context.Context, r *model.DailyReport) error
	FindByID(ctx context.Context, id string) (*model.DailyReport, error)
	FindByUserAndDate(ctx context.Context, userID, date string) (*model.DailyReport, error)
	Update(ctx context.Context, r *model.DailyReport) error
	FindByUserID(ctx context.Context, userID string, limit int) ([]model.DailyReport, error)
	FindAll(ctx context.Context, f ReportFilter) ([]model.DailyReport, error)
}

type ScreenshotStore interface {
	Create(ctx context.Context, s *model.Screenshot) error
	FindByID(ctx context.Context, id string) (*model.Screenshot, error)
	FindByUserID(ctx context.Context, userID string, limit int) ([]model.Screenshot, error)
}

// Store bundles the per-entity stores so the wiring can swap the whole
// backend with one configuration switch.
type Store interface {
	Attendance() AttendanceStore
	Users() UserStore
	Reports() ReportStore
	Screenshots() ScreenshotStore
}
