package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

const (
	DefaultShiftStart   = "09:00"
	DefaultGraceMinutes = 15
)

// Notifier receives informational messages about notable attendance events.
// A nil notifier disables notifications.
type Notifier interface {
	Info(message string) error
}

// AttendanceService is the clock-in/break/clock-out state machine. All
// mutations for one user are serialized through a per-user lock, and record
// creation additionally relies on the store's conditional Create, so a
// duplicate clock-in can never slip through.
type AttendanceService struct {
	records  store.AttendanceStore
	locks    *keyedMutex
	now      func() time.Time
	shiftMin int
	graceMin int
	notifier Notifier
}

func NewAttendanceService(records store.AttendanceStore) *AttendanceService {
	shiftMin, _ := ParseClock(DefaultShiftStart)
	return &AttendanceService{
		records:  records,
		locks:    newKeyedMutex(),
		now:      time.Now,
		shiftMin: shiftMin,
		graceMin: DefaultGraceMinutes,
	}
}

// WithShift overrides the lateness policy. shiftStart is "HH:MM".
func (s *AttendanceService) WithShift(shiftStart string, graceMinutes int) (*AttendanceService, error) {
	shiftMin, err := ParseClock(shiftStart)
	if err != nil {
		return nil, fmt.Errorf("invalid shift start: %w", err)
	}
	s.shiftMin = shiftMin
	s.graceMin = graceMinutes
	return s, nil
}

// WithClock replaces the time source, used by tests.
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

func (s *AttendanceService) WithNotifier(n Notifier) *AttendanceService {
	s.notifier = n
	return s
}

func (s *AttendanceService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *AttendanceService) wallClock() string {
	return s.now().Format("15:04")
}

// ClockIn creates the attendance record for (userID, date). The status is
// decided once, here: LATE when the clock-in falls past shift start plus the
// grace period, PRESENT otherwise.
func (s *AttendanceService) ClockIn(ctx context.Context, userID, date, clockInTime string) (*model.AttendanceRecord, error) {
	if !ValidDate(date) {
		return nil, fmt.Errorf("date %q must be in YYYY-MM-DD format: %w", date, ErrValidation)
	}
	clockInMin, err := ParseClock(clockInTime)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	status := model.StatusPresent
	if clockInMin > s.shiftMin+s.graceMin {
		status = model.StatusLate
	}

	now := s.now()
	rec := &model.AttendanceRecord{
		ID:                uuid.NewString(),
		UserID:            userID,
		Date:              date,
		ClockInTime:       clockInTime,
		Status:            status,
		TotalBreakMinutes: 0,
		Breaks:            []model.Break{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("attendance already recorded for this date: %w", ErrConflict)
		}
		return nil, fmt.Errorf("create attendance record: %w", err)
	}

	if status == model.StatusLate {
		s.notify(fmt.Sprintf("Late clock-in: user %s at %s on %s", userID, clockInTime, date))
	}
	return rec, nil
}

// ClockOut closes today's record. An open break is force-closed first, then
// the total worked hours are derived from the clock times minus the break
// total. Everything is persisted in a single update.
func (s *AttendanceService) ClockOut(ctx context.Context, userID, clockOutTime string) (*model.AttendanceRecord, error) {
	if _, err := ParseClock(clockOutTime); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	rec, err := s.findToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec.HasClockedOut() {
		return nil, fmt.Errorf("already clocked out today: %w", ErrConflict)
	}

	if rec.CurrentBreak() != nil {
		if _, err := s.closeOpenBreak(rec, clockOutTime); err != nil {
			return nil, err
		}
	}

	rec.ClockOutTime = &clockOutTime
	hours, err := ElapsedHours(rec.ClockInTime, clockOutTime, rec.TotalBreakMinutes)
	if err != nil {
		return nil, err
	}
	rec.TotalHours = &hours
	rec.UpdatedAt = s.now()

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update attendance record: %w", err)
	}
	return rec, nil
}

// StartBreak appends a new open break to today's record.
func (s *AttendanceService) StartBreak(ctx context.Context, userID string) (*model.AttendanceRecord, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	rec, err := s.findToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec.HasClockedOut() {
		return nil, fmt.Errorf("cannot take break after clocking out: %w", ErrConflict)
	}
	if rec.CurrentBreak() != nil {
		return nil, fmt.Errorf("already on break: %w", ErrConflict)
	}

	rec.Breaks = append(rec.Breaks, model.Break{
		ID:             uuid.NewString(),
		AttendanceID:   rec.ID,
		Position:       len(rec.Breaks),
		BreakStartTime: s.wallClock(),
	})
	rec.UpdatedAt = s.now()

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update attendance record: %w", err)
	}
	return rec, nil
}

// EndBreak closes the open break on today's record and returns the record
// together with the break duration in minutes.
func (s *AttendanceService) EndBreak(ctx context.Context, userID string) (*model.AttendanceRecord, int, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	rec, err := s.findToday(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if rec.CurrentBreak() == nil {
		return nil, 0, fmt.Errorf("no active break found: %w", ErrNotFound)
	}

	duration, err := s.closeOpenBreak(rec, s.wallClock())
	if err != nil {
		return nil, 0, err
	}

	// Reachable when an admin set the clock-out while a break was open.
	if rec.HasClockedOut() {
		hours, err := ElapsedHours(rec.ClockInTime, *rec.ClockOutTime, rec.TotalBreakMinutes)
		if err != nil {
			return nil, 0, err
		}
		rec.TotalHours = &hours
	}
	rec.UpdatedAt = s.now()

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, 0, fmt.Errorf("update attendance record: %w", err)
	}
	return rec, duration, nil
}

// closeOpenBreak ends the open break in memory at the given wall-clock time
// and folds its duration into the record's break total. The caller persists.
func (s *AttendanceService) closeOpenBreak(rec *model.AttendanceRecord, endTime string) (int, error) {
	br := rec.CurrentBreak()
	duration, err := ElapsedMinutes(br.BreakStartTime, endTime)
	if err != nil {
		return 0, err
	}
	br.BreakEndTime = &endTime
	br.BreakDuration = &duration
	rec.TotalBreakMinutes += duration
	return duration, nil
}

// BreakStatus describes the break position of a user's current day.
type BreakStatus struct {
	OnBreak           bool          `json:"onBreak"`
	HasClockedIn      bool          `json:"hasClockedIn"`
	HasClockedOut     bool          `json:"hasClockedOut"`
	CurrentBreak      *model.Break  `json:"currentBreak,omitempty"`
	TotalBreakMinutes int           `json:"totalBreakMinutes"`
	Breaks            []model.Break `json:"breaks"`
}

// GetBreakStatus never fails on a missing record; it degrades to the
// not-clocked-in state instead.
func (s *AttendanceService) GetBreakStatus(ctx context.Context, userID string) (*BreakStatus, error) {
	rec, err := s.records.FindByUserAndDate(ctx, userID, s.today())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &BreakStatus{Breaks: []model.Break{}}, nil
		}
		return nil, fmt.Errorf("find attendance record: %w", err)
	}
	current := rec.CurrentBreak()
	return &BreakStatus{
		OnBreak:           current != nil,
		HasClockedIn:      true,
		HasClockedOut:     rec.HasClockedOut(),
		CurrentBreak:      current,
		TotalBreakMinutes: rec.TotalBreakMinutes,
		Breaks:            rec.Breaks,
	}, nil
}

// GetCurrentBreak returns the open break of a record, or ErrNotFound when
// the record does not exist or has no open break.
func (s *AttendanceService) GetCurrentBreak(ctx context.Context, recordID string) (*model.Break, error) {
	rec, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("attendance record not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("find attendance record: %w", err)
	}
	br := rec.CurrentBreak()
	if br == nil {
		return nil, fmt.Errorf("no active break found: %w", ErrNotFound)
	}
	return br, nil
}

// Today returns today's record for the user, or nil when none exists.
func (s *AttendanceService) Today(ctx context.Context, userID string) (*model.AttendanceRecord, error) {
	rec, err := s.records.FindByUserAndDate(ctx, userID, s.today())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find attendance record: %w", err)
	}
	return rec, nil
}

// History returns the user's records, most recent date first.
func (s *AttendanceService) History(ctx context.Context, userID string, limit int) ([]model.AttendanceRecord, error) {
	return s.records.FindByUserID(ctx, userID, limit)
}

func (s *AttendanceService) findToday(ctx context.Context, userID string) (*model.AttendanceRecord, error) {
	rec, err := s.records.FindByUserAndDate(ctx, userID, s.today())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("no attendance record found for today: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("find attendance record: %w", err)
	}
	return rec, nil
}

func (s *AttendanceService) notify(message string) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.Info(message); err != nil {
			log.Printf("notify: %v", err)
		}
	}()
}
