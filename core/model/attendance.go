package model

import "time"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusLate    AttendanceStatus = "LATE"
	StatusAbsent  AttendanceStatus = "ABSENT"
)

// Break is one interval within an attendance record. BreakEndTime is nil
// while the break is still running; BreakDuration is only filled in once the
// break has ended.
type Break struct {
	ID             string  `gorm:"type:char(36);primaryKey" json:"id"`
	AttendanceID   string  `gorm:"type:char(36);index;not null" json:"-"`
	Position       int     `gorm:"not null" json:"-"`
	BreakStartTime string  `gorm:"type:varchar(5);not null" json:"breakStartTime"`
	BreakEndTime   *string `gorm:"type:varchar(5)" json:"breakEndTime,omitempty"`
	BreakDuration  *int    `json:"breakDuration,omitempty"`
}

func (Break) TableName() string {
	return "attendance_breaks"
}

// AttendanceRecord is one working day for one user. At most one record may
// exist per (UserID, Date); the stores enforce this with a conditional
// create. Breaks are kept in chronological order via Position.
type AttendanceRecord struct {
	ID                string           `gorm:"type:char(36);primaryKey" json:"id"`
	UserID            string           `gorm:"type:char(36);not null;uniqueIndex:uniq_attendance_user_date" json:"userId"`
	Date              string           `gorm:"type:varchar(10);not null;uniqueIndex:uniq_attendance_user_date" json:"date"`
	ClockInTime       string           `gorm:"type:varchar(5);not null" json:"clockInTime"`
	ClockOutTime      *string          `gorm:"type:varchar(5)" json:"clockOutTime,omitempty"`
	Status            AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`
	TotalHours        *float64         `json:"totalHours,omitempty"`
	TotalBreakMinutes int              `gorm:"not null;default:0" json:"totalBreakMinutes"`
	Breaks            []Break          `gorm:"foreignKey:AttendanceID;references:ID" json:"breaks"`
	Notes             *string          `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CreatedAt         time.Time        `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt         time.Time        `gorm:"type:timestamp;not null" json:"updatedAt"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// CurrentBreak returns the open break, if any. The attendance rules keep at
// most one break without an end time per record.
func (r *AttendanceRecord) CurrentBreak() *Break {
	for i := range r.Breaks {
		if r.Breaks[i].BreakEndTime == nil {
			return &r.Breaks[i]
		}
	}
	return nil
}

func (r *AttendanceRecord) HasClockedOut() bool {
	return r.ClockOutTime != nil
}
