package memstore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

func record(userID, date string) *model.AttendanceRecord {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return &model.AttendanceRecord{
		ID:          userID + "-" + date,
		UserID:      userID,
		Date:        date,
		ClockInTime: "09:00",
		Status:      model.StatusPresent,
		Breaks:      []model.Break{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestAttendanceCreateDuplicate(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Attendance().Create(ctx, record("u1", "2024-01-01")))

	dup := record("u1", "2024-01-01")
	dup.ID = "different-id"
	assert.ErrorIs(t, s.Attendance().Create(ctx, dup), store.ErrDuplicate)

	// same user, different date is fine
	require.NoError(t, s.Attendance().Create(ctx, record("u1", "2024-01-02")))
}

func TestAttendanceConcurrentCreate(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 20)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Attendance().Create(ctx, record("u1", "2024-01-01"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, store.ErrDuplicate)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestAttendanceCloneIsolation(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	ctx := context.Background()

	rec := record("u1", "2024-01-01")
	rec.Breaks = []model.Break{{ID: "b1", AttendanceID: rec.ID, BreakStartTime: "12:00"}}
	require.NoError(t, s.Attendance().Create(ctx, rec))

	// mutating what the caller holds must not affect the stored copy
	rec.ClockInTime = "10:00"
	rec.Breaks[0].BreakStartTime = "13:00"

	got, err := s.Attendance().FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.ClockInTime)
	assert.Equal(t, "12:00", got.Breaks[0].BreakStartTime)

	// and mutating a read result must not leak back either
	end := "12:30"
	got.Breaks[0].BreakEndTime = &end

	again, err := s.Attendance().FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, again.Breaks[0].BreakEndTime)
}

func TestAttendanceFindByUserID(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Attendance().Create(ctx, record("u1", "2024-01-01")))
	require.NoError(t, s.Attendance().Create(ctx, record("u1", "2024-01-03")))
	require.NoError(t, s.Attendance().Create(ctx, record("u1", "2024-01-02")))
	require.NoError(t, s.Attendance().Create(ctx, record("u2", "2024-01-01")))

	got, err := s.Attendance().FindByUserID(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-03", got[0].Date)
	assert.Equal(t, "2024-01-02", got[1].Date)
}

func TestAttendanceFindAllFilters(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	ctx := context.Background()

	late := record("u1", "2024-01-02")
	late.Status = model.StatusLate
	require.NoError(t, s.Attendance().Create(ctx, record("u1", "2024-01-01")))
	require.NoError(t, s.Attendance().Create(ctx, late))
	require.NoError(t, s.Attendance().Create(ctx, record("u2", "2024-01-02")))

	got, err := s.Attendance().FindAll(ctx, store.AttendanceFilter{Status: model.StatusLate})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].UserID)

	got, err = s.Attendance().FindAll(ctx, store.AttendanceFilter{FromDate: "2024-01-02", ToDate: "2024-01-02"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUserEmailUniqueness(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	ctx := context.Background()

	alice := &model.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: model.RoleIntern, IsActive: true}
	require.NoError(t, s.Users().Create(ctx, alice))

	dup := &model.User{ID: "u2", Name: "Other Alice", Email: "alice@example.com", Role: model.RoleIntern}
	assert.ErrorIs(t, s.Users().Create(ctx, dup), store.ErrDuplicate)

	bob := &model.User{ID: "u3", Name: "Bob", Email: "bob@example.com", Role: model.RoleIntern}
	require.NoError(t, s.Users().Create(ctx, bob))

	// renaming onto a taken email is rejected
	bob.Email = "alice@example.com"
	assert.ErrorIs(t, s.Users().Update(ctx, bob), store.ErrDuplicate)

	// lookup follows an email change
	bob.Email = "robert@example.com"
	require.NoError(t, s.Users().Update(ctx, bob))
	got, err := s.Users().FindByEmail(ctx, "robert@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u3", got.ID)
	_, err = s.Users().FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Attendance().Create(ctx, record("u1", "2024-01-01")))
	require.NoError(t, s.Users().Create(ctx, &model.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: model.RoleIntern, IsActive: true}))
	require.NoError(t, s.Reports().Create(ctx, &model.DailyReport{
		ID: "r1", UserID: "u1", Date: "2024-01-01",
		TaskTitle: "Setup", Status: model.ReportPending, ToolsUsed: model.StringList{"Go"},
	}))

	reopened, err := New(path)
	require.NoError(t, err)

	rec, err := reopened.Attendance().FindByUserAndDate(ctx, "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "09:00", rec.ClockInTime)

	u, err := reopened.Users().FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	r, err := reopened.Reports().FindByUserAndDate(ctx, "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Setup", r.TaskTitle)

	// indexes are rebuilt, so uniqueness still holds after reload
	assert.ErrorIs(t, reopened.Attendance().Create(ctx, record("u1", "2024-01-01")), store.ErrDuplicate)
}

func TestReportDuplicatePerDate(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Reports().Create(ctx, &model.DailyReport{ID: "r1", UserID: "u1", Date: "2024-01-01", Status: model.ReportPending}))
	err = s.Reports().Create(ctx, &model.DailyReport{ID: "r2", UserID: "u1", Date: "2024-01-01", Status: model.ReportPending})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}
