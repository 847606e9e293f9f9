package model

import "time"

type ReportStatus string

const (
	ReportPending  ReportStatus = "PENDING"
	ReportApproved ReportStatus = "APPROVED"
	ReportRejected ReportStatus = "REJECTED"
)

// DailyReport is one work log per user per date. Review fields stay empty
// until an admin approves or rejects the report.
type DailyReport struct {
	ID              string       `gorm:"type:char(36);primaryKey" json:"id"`
	UserID          string       `gorm:"type:char(36);not null;uniqueIndex:uniq_report_user_date" json:"userId"`
	Date            string       `gorm:"type:varchar(10);not null;uniqueIndex:uniq_report_user_date" json:"date"`
	TaskTitle       string       `gorm:"type:varchar(200);not null" json:"taskTitle"`
	TaskDescription string       `gorm:"type:text;not null" json:"taskDescription"`
	ToolsUsed       StringList   `gorm:"type:text" json:"toolsUsed"`
	TimeSpent       string       `gorm:"type:varchar(50)" json:"timeSpent"`
	Status          ReportStatus `gorm:"type:varchar(10);not null" json:"status"`
	SubmittedAt     time.Time    `gorm:"type:timestamp;not null" json:"submittedAt"`
	ReviewedBy      *string      `gorm:"type:char(36)" json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time   `gorm:"type:timestamp" json:"reviewedAt,omitempty"`
	ReviewComments  *string      `gorm:"type:varchar(500)" json:"reviewComments,omitempty"`
	CreatedAt       time.Time    `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt       time.Time    `gorm:"type:timestamp;not null" json:"updatedAt"`
}

func (DailyReport) TableName() string {
	return "daily_reports"
}
