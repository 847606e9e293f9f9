package model

import "time"

// Screenshot is the metadata row for one uploaded capture. FileKey is the
// location inside the configured screenshot storage (local path or S3 key).
type Screenshot struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);index;not null" json:"userId"`
	Date      string    `gorm:"type:varchar(10);not null" json:"date"`
	FileName  string    `gorm:"type:varchar(255);not null" json:"fileName"`
	FileKey   string    `gorm:"type:varchar(255);not null" json:"-"`
	MimeType  string    `gorm:"type:varchar(50);not null" json:"mimeType"`
	SizeBytes int64     `gorm:"not null" json:"sizeBytes"`
	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (Screenshot) TableName() string {
	return "screenshots"
}
