package gormstore

import (
	"context"

	"gorm.io/gorm"

	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Create(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *userStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *userStore) Update(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Save(u).Error)
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *userStore) FindAll(ctx context.Context, f store.UserFilter) ([]model.User, error) {
	q := s.db.WithContext(ctx)
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	var users []model.User
	if err := q.Order("name").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}
