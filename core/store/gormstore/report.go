package gormstore

import (
	"context"

	"gorm.io/gorm"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

type reportStore struct {
	db *gorm.DB
}

func (s *reportStore) Create(ctx context.Context, r *model.DailyReport) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *reportStore) FindByID(ctx context.Context, id string) (*model.DailyReport, error) {
	var r model.DailyReport
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *reportStore) FindByUserAndDate(ctx context.Context, userID, date string) (*model.DailyReport, error) {
	var r model.DailyReport
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *reportStore) Update(ctx context.Context, r *model.DailyReport) error {
	return translate(s.db.WithContext(ctx).Save(r).Error)
}

func (s *reportStore) FindByUserID(ctx context.Context, userID string, limit int) ([]model.DailyReport, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var reports []model.DailyReport
	if err := q.Find(&reports).Error; err != nil {
		return nil, translate(err)
	}
	return reports, nil
}

func (s *reportStore) FindAll(ctx context.Context, f store.ReportFilter) ([]model.DailyReport, error) {
	q := s.db.WithContext(ctx)
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.FromDate != "" {
		q = q.Where("date >= ?", f.FromDate)
	}
	if f.ToDate != "" {
		q = q.Where("date <= ?", f.ToDate)
	}
	var reports []model.DailyReport
	if err := q.Order("date desc").Find(&reports).Error; err != nil {
		return nil, translate(err)
	}
	return reports, nil
}
