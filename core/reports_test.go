package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/core/store/memstore"
)

func reportService(t *testing.T) *ReportService {
	t.Helper()
	ms, err := memstore.New("")
	require.NoError(t, err)

	at := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	return NewReportService(ms.Reports()).WithClock(func() time.Time { return at })
}

func submitReport(t *testing.T, svc *ReportService, userID, date string) *model.DailyReport {
	t.Helper()
	report, err := svc.Submit(context.Background(), userID, SubmitReportInput{
		Date:            date,
		TaskTitle:       "API integration",
		TaskDescription: "Wired the attendance endpoints to the new backend",
		ToolsUsed:       []string{"Go", "Postman"},
		TimeSpent:       "6 hours",
	})
	require.NoError(t, err)
	return report
}

func TestSubmitReport(t *testing.T) {
	svc := reportService(t)

	report := submitReport(t, svc, testUser, "2024-01-01")
	assert.Equal(t, model.ReportPending, report.Status)
	assert.Equal(t, model.StringList{"Go", "Postman"}, report.ToolsUsed)
	assert.Nil(t, report.ReviewedBy)
	assert.Nil(t, report.ReviewedAt)
}

func TestSubmitReportInvalidDate(t *testing.T) {
	svc := reportService(t)
	_, err := svc.Submit(context.Background(), testUser, SubmitReportInput{Date: "Jan 1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitReportTwiceConflicts(t *testing.T) {
	svc := reportService(t)
	submitReport(t, svc, testUser, "2024-01-01")

	_, err := svc.Submit(context.Background(), testUser, SubmitReportInput{
		Date:      "2024-01-01",
		TaskTitle: "Second attempt",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateReport(t *testing.T) {
	svc := reportService(t)
	ctx := context.Background()
	report := submitReport(t, svc, testUser, "2024-01-01")

	title := "API integration and tests"
	updated, err := svc.Update(ctx, testUser, report.ID, UpdateReportInput{
		TaskTitle: &title,
		ToolsUsed: []string{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.TaskTitle)
	assert.Equal(t, model.StringList{"Go"}, updated.ToolsUsed)
	// untouched fields survive a partial update
	assert.Equal(t, report.TaskDescription, updated.TaskDescription)
	assert.Equal(t, report.TimeSpent, updated.TimeSpent)
}

func TestUpdateReportNotOwner(t *testing.T) {
	svc := reportService(t)
	report := submitReport(t, svc, testUser, "2024-01-01")

	title := "hijacked"
	_, err := svc.Update(context.Background(), "someone-else", report.ID, UpdateReportInput{TaskTitle: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReviewedReportConflicts(t *testing.T) {
	svc := reportService(t)
	ctx := context.Background()
	report := submitReport(t, svc, testUser, "2024-01-01")

	_, err := svc.Review(ctx, "admin-1", report.ID, model.ReportApproved, "")
	require.NoError(t, err)

	title := "too late"
	_, err = svc.Update(ctx, testUser, report.ID, UpdateReportInput{TaskTitle: &title})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestReviewReport(t *testing.T) {
	svc := reportService(t)
	ctx := context.Background()
	report := submitReport(t, svc, testUser, "2024-01-01")

	reviewed, err := svc.Review(ctx, "admin-1", report.ID, model.ReportRejected, "Needs more detail")
	require.NoError(t, err)
	assert.Equal(t, model.ReportRejected, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "admin-1", *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	require.NotNil(t, reviewed.ReviewComments)
	assert.Equal(t, "Needs more detail", *reviewed.ReviewComments)
}

func TestReviewReportInvalidStatus(t *testing.T) {
	svc := reportService(t)
	report := submitReport(t, svc, testUser, "2024-01-01")

	_, err := svc.Review(context.Background(), "admin-1", report.ID, model.ReportPending, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewMissingReport(t *testing.T) {
	svc := reportService(t)
	_, err := svc.Review(context.Background(), "admin-1", "missing", model.ReportApproved, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportStats(t *testing.T) {
	svc := reportService(t)
	ctx := context.Background()

	first := submitReport(t, svc, testUser, "2024-01-01")
	submitReport(t, svc, testUser, "2024-01-02")
	third := submitReport(t, svc, testUser, "2024-01-03")
	submitReport(t, svc, "other-user", "2024-01-01")

	_, err := svc.Review(ctx, "admin-1", first.ID, model.ReportApproved, "")
	require.NoError(t, err)
	_, err = svc.Review(ctx, "admin-1", third.ID, model.ReportRejected, "")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, &ReportStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1}, stats)
}

func TestListReportsFiltered(t *testing.T) {
	svc := reportService(t)
	ctx := context.Background()

	submitReport(t, svc, testUser, "2024-01-01")
	submitReport(t, svc, testUser, "2024-01-05")
	submitReport(t, svc, "other-user", "2024-01-03")

	mine, err := svc.Mine(ctx, testUser, 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// most recent first
	assert.Equal(t, "2024-01-05", mine[0].Date)

	ranged, err := svc.List(ctx, store.ReportFilter{FromDate: "2024-01-02", ToDate: "2024-01-04"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "other-user", ranged[0].UserID)
}
