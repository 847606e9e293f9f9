package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store/memstore"
)

const testUser = "user-1"

// testService returns a service over a fresh memory store whose clock can be
// moved by reassigning *at.
func testService(t *testing.T) (*AttendanceService, *time.Time) {
	t.Helper()
	ms, err := memstore.New("")
	require.NoError(t, err)

	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := NewAttendanceService(ms.Attendance()).WithClock(func() time.Time { return at })
	return svc, &at
}

func setClock(at *time.Time, hour, minute int) {
	*at = time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestClockInStatus(t *testing.T) {
	tests := []struct {
		clockIn string
		status  model.AttendanceStatus
	}{
		{"08:45", model.StatusPresent},
		{"09:00", model.StatusPresent},
		{"09:10", model.StatusPresent},
		{"09:15", model.StatusPresent}, // grace boundary is inclusive
		{"09:16", model.StatusLate},
		{"11:30", model.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.clockIn, func(t *testing.T) {
			svc, _ := testService(t)
			rec, err := svc.ClockIn(context.Background(), testUser, "2024-01-01", tt.clockIn)
			require.NoError(t, err)
			assert.Equal(t, tt.status, rec.Status)
			assert.Empty(t, rec.Breaks)
			assert.Zero(t, rec.TotalBreakMinutes)
			assert.Nil(t, rec.TotalHours)
		})
	}
}

func TestClockInValidation(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testUser, "01-01-2024", "09:00")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ClockIn(ctx, testUser, "2024-01-01", "nine")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClockInTwiceConflicts(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, testUser, "2024-01-01", "09:05")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestConcurrentClockInOneWins(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestClockOutWithoutRecord(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.ClockOut(context.Background(), testUser, "17:00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClockOutTwiceConflicts(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
	require.NoError(t, err)
	_, err = svc.ClockOut(ctx, testUser, "17:00")
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, testUser, "18:00")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBreakLifecycle(t *testing.T) {
	svc, at := testService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
	require.NoError(t, err)

	setClock(at, 12, 0)
	rec, err := svc.StartBreak(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, rec.Breaks, 1)
	assert.Equal(t, "12:00", rec.Breaks[0].BreakStartTime)
	assert.Nil(t, rec.Breaks[0].BreakEndTime)

	// nested break start is rejected
	_, err = svc.StartBreak(ctx, testUser)
	assert.ErrorIs(t, err, ErrConflict)

	setClock(at, 12, 30)
	rec, duration, err := svc.EndBreak(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 30, duration)
	assert.Equal(t, 30, rec.TotalBreakMinutes)
	require.Len(t, rec.Breaks, 1)
	require.NotNil(t, rec.Breaks[0].BreakEndTime)
	assert.Equal(t, "12:30", *rec.Breaks[0].BreakEndTime)
	require.NotNil(t, rec.Breaks[0].BreakDuration)
	assert.Equal(t, 30, *rec.Breaks[0].BreakDuration)

	// nothing open anymore
	_, _, err = svc.EndBreak(ctx, testUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEndBreakWithoutRecord(t *testing.T) {
	svc, _ := testService(t)
	_, _, err := svc.EndBreak(context.Background(), testUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartBreakAfterClockOut(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
	require.NoError(t, err)
	_, err = svc.ClockOut(ctx, testUser, "17:00")
	require.NoError(t, err)

	_, err = svc.StartBreak(ctx, testUser)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClockOutAutoClosesOpenBreak(t *testing.T) {
	svc, at := testService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
	require.NoError(t, err)

	setClock(at, 16, 0)
	_, err = svc.StartBreak(ctx, testUser)
	require.NoError(t, err)

	setClock(at, 16, 45)
	rec, err := svc.ClockOut(ctx, testUser, "16:45")
	require.NoError(t, err)

	assert.Nil(t, rec.CurrentBreak())
	assert.Equal(t, 45, rec.TotalBreakMinutes)
	require.NotNil(t, rec.TotalHours)
	// 09:00 to 16:45 is 465 minutes, minus the 45 minute break
	assert.Equal(t, 7.0, *rec.TotalHours)
}

func TestFullDayScenario(t *testing.T) {
	svc, at := testService(t)
	ctx := context.Background()

	rec, err := svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPresent, rec.Status)

	setClock(at, 12, 0)
	_, err = svc.StartBreak(ctx, testUser)
	require.NoError(t, err)

	status, err := svc.GetBreakStatus(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, status.OnBreak)
	assert.True(t, status.HasClockedIn)
	assert.False(t, status.HasClockedOut)
	require.NotNil(t, status.CurrentBreak)

	setClock(at, 12, 30)
	rec, duration, err := svc.EndBreak(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 30, duration)
	assert.Equal(t, 30, rec.TotalBreakMinutes)

	setClock(at, 17, 0)
	rec, err = svc.ClockOut(ctx, testUser, "17:00")
	require.NoError(t, err)
	require.NotNil(t, rec.TotalHours)
	assert.Equal(t, 7.5, *rec.TotalHours)

	status, err = svc.GetBreakStatus(ctx, testUser)
	require.NoError(t, err)
	assert.False(t, status.OnBreak)
	assert.True(t, status.HasClockedOut)
	assert.Equal(t, 30, status.TotalBreakMinutes)
	assert.Len(t, status.Breaks, 1)
}

func TestBreakStatusWithoutRecord(t *testing.T) {
	svc, _ := testService(t)
	status, err := svc.GetBreakStatus(context.Background(), testUser)
	require.NoError(t, err)
	assert.False(t, status.OnBreak)
	assert.False(t, status.HasClockedIn)
	assert.False(t, status.HasClockedOut)
	assert.Nil(t, status.CurrentBreak)
	assert.Zero(t, status.TotalBreakMinutes)
}

func TestGetCurrentBreak(t *testing.T) {
	svc, at := testService(t)
	ctx := context.Background()

	rec, err := svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
	require.NoError(t, err)

	_, err = svc.GetCurrentBreak(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	setClock(at, 10, 0)
	_, err = svc.StartBreak(ctx, testUser)
	require.NoError(t, err)

	br, err := svc.GetCurrentBreak(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", br.BreakStartTime)

	_, err = svc.GetCurrentBreak(ctx, "missing-record")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodayAndHistory(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	rec, err := svc.Today(ctx, testUser)
	require.NoError(t, err)
	assert.Nil(t, rec)

	created, err := svc.ClockIn(ctx, testUser, "2024-01-01", "09:00")
	require.NoError(t, err)

	rec, err = svc.Today(ctx, testUser)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, created.ID, rec.ID)

	history, err := svc.History(ctx, testUser, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLateClockInNotifies(t *testing.T) {
	svc, _ := testService(t)

	n := &capturingNotifier{done: make(chan struct{})}
	svc.WithNotifier(n)

	_, err := svc.ClockIn(context.Background(), testUser, "2024-01-01", "09:30")
	require.NoError(t, err)

	select {
	case <-n.done:
		assert.Contains(t, n.message, "Late clock-in")
	case <-time.After(time.Second):
		t.Fatal("expected a notification")
	}
}

type capturingNotifier struct {
	message string
	done    chan struct{}
}

func (n *capturingNotifier) Info(message string) error {
	n.message = message
	close(n.done)
	return nil
}
