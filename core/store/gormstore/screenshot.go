package gormstore

import (
	"context"

	"gorm.io/gorm"

	"interntrack.com/interntrack/core/model"
)

type screenshotStore struct {
	db *gorm.DB
}

func (s *screenshotStore) Create(ctx context.Context, sc *model.Screenshot) error {
	if err := s.db.WithContext(ctx).Create(sc).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *screenshotStore) FindByID(ctx context.Context, id string) (*model.Screenshot, error) {
	var sc model.Screenshot
	if err := s.db.WithContext(ctx).First(&sc, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &sc, nil
}

func (s *screenshotStore) FindByUserID(ctx context.Context, userID string, limit int) ([]model.Screenshot, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var screenshots []model.Screenshot
	if err := q.Find(&screenshots).Error; err != nil {
		return nil, translate(err)
	}
	return screenshots, nil
}
