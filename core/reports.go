package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

// ReportService manages daily work reports: one submission per user per
// date, editable while pending, reviewed by admins.
type ReportService struct {
	reports  store.ReportStore
	now      func() time.Time
	notifier Notifier
}

func NewReportService(reports store.ReportStore) *ReportService {
	return &ReportService{reports: reports, now: time.Now}
}

func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

func (s *ReportService) WithNotifier(n Notifier) *ReportService {
	s.notifier = n
	return s
}

type SubmitReportInput struct {
	Date            string
	TaskTitle       string
	TaskDescription string
	ToolsUsed       []string
	TimeSpent       string
}

func (s *ReportService) Submit(ctx context.Context, userID string, in SubmitReportInput) (*model.DailyReport, error) {
	if !ValidDate(in.Date) {
		return nil, fmt.Errorf("date %q must be in YYYY-MM-DD format: %w", in.Date, ErrValidation)
	}

	now := s.now()
	report := &model.DailyReport{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            in.Date,
		TaskTitle:       in.TaskTitle,
		TaskDescription: in.TaskDescription,
		ToolsUsed:       in.ToolsUsed,
		TimeSpent:       in.TimeSpent,
		Status:          model.ReportPending,
		SubmittedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("report already submitted for this date: %w", ErrConflict)
		}
		return nil, fmt.Errorf("create report: %w", err)
	}

	if s.notifier != nil {
		go func() {
			_ = s.notifier.Info(fmt.Sprintf("New daily report from user %s for %s: %s", userID, in.Date, in.TaskTitle))
		}()
	}
	return report, nil
}

func (s *ReportService) Get(ctx context.Context, id string) (*model.DailyReport, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("report not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return report, nil
}

type UpdateReportInput struct {
	TaskTitle       *string
	TaskDescription *string
	ToolsUsed       []string
	TimeSpent       *string
}

// Update edits a pending report. Only the owner may edit, and reviewed
// reports are immutable.
func (s *ReportService) Update(ctx context.Context, userID, id string, in UpdateReportInput) (*model.DailyReport, error) {
	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, fmt.Errorf("report not found: %w", ErrNotFound)
	}
	if report.Status != model.ReportPending {
		return nil, fmt.Errorf("report has already been reviewed: %w", ErrConflict)
	}

	if in.TaskTitle != nil {
		report.TaskTitle = *in.TaskTitle
	}
	if in.TaskDescription != nil {
		report.TaskDescription = *in.TaskDescription
	}
	if in.ToolsUsed != nil {
		report.ToolsUsed = in.ToolsUsed
	}
	if in.TimeSpent != nil {
		report.TimeSpent = *in.TimeSpent
	}
	report.UpdatedAt = s.now()

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	return report, nil
}

// Review approves or rejects a report and stamps the reviewer.
func (s *ReportService) Review(ctx context.Context, reviewerID, id string, status model.ReportStatus, comments string) (*model.DailyReport, error) {
	if status != model.ReportApproved && status != model.ReportRejected {
		return nil, fmt.Errorf("review status must be APPROVED or REJECTED: %w", ErrValidation)
	}

	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report.Status = status
	report.ReviewedBy = &reviewerID
	report.ReviewedAt = &now
	if comments != "" {
		report.ReviewComments = &comments
	}
	report.UpdatedAt = now

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	return report, nil
}

func (s *ReportService) Mine(ctx context.Context, userID string, limit int) ([]model.DailyReport, error) {
	return s.reports.FindByUserID(ctx, userID, limit)
}

func (s *ReportService) List(ctx context.Context, f store.ReportFilter) ([]model.DailyReport, error) {
	return s.reports.FindAll(ctx, f)
}

// ReportStats summarizes report review progress.
type ReportStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

func (s *ReportService) Stats(ctx context.Context, userID string) (*ReportStats, error) {
	reports, err := s.reports.FindAll(ctx, store.ReportFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	stats := &ReportStats{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case model.ReportPending:
			stats.Pending++
		case model.ReportApproved:
			stats.Approved++
		case model.ReportRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}
