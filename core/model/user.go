package model

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleIntern UserRole = "INTERN"
)

type User struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"type:varchar(100);not null" json:"-"`
	Role       UserRole  `gorm:"type:varchar(10);not null" json:"role"`
	Avatar     *string   `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	Department *string   `gorm:"type:varchar(120)" json:"department,omitempty"`
	IsActive   bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"type:timestamp;not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
