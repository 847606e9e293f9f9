package gormstore

import (
	"context"

	"gorm.io/gorm"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

type attendanceStore struct {
	db *gorm.DB
}

func (s *attendanceStore) preload(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Breaks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (s *attendanceStore) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *attendanceStore) FindByID(ctx context.Context, id string) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	if err := s.preload(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (s *attendanceStore) FindByUserAndDate(ctx context.Context, userID, date string) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	if err := s.preload(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (s *attendanceStore) Update(ctx context.Context, rec *model.AttendanceRecord) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(rec).Error
	return translate(err)
}

func (s *attendanceStore) FindByUserID(ctx context.Context, userID string, limit int) ([]model.AttendanceRecord, error) {
	q := s.preload(ctx).Where("user_id = ?", userID).Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var records []model.AttendanceRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return records, nil
}

func (s *attendanceStore) FindAll(ctx context.Context, f store.AttendanceFilter) ([]model.AttendanceRecord, error) {
	q := s.preload(ctx)
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
	var records []model.AttendanceRecord
	if err := q.Order("date desc").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return records, nil
}
