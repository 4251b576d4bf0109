package model

import "time"

// 上课日
const (
	DayMonday    = "MONDAY"
	DayTuesday   = "TUESDAY"
	DayWednesday = "WEDNESDAY"
	DayThursday  = "THURSDAY"
	DayFriday    = "FRIDAY"
	DaySaturday  = "SATURDAY"
	DaySunday    = "SUNDAY"
)

// Lesson 课程时段，对应 lessons
// StartTime/EndTime 只有星期与时刻有意义，年月日是排课时的历史日期
type Lesson struct {
	ID        int       `gorm:"primaryKey"                 json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Day       string    `gorm:"type:varchar(10);not null"  json:"day"`
	StartTime time.Time `gorm:"not null"                   json:"start_time"`
	EndTime   time.Time `gorm:"not null"                   json:"end_time"`
	SubjectID int       `gorm:"not null"                   json:"subject_id"`
	ClassID   int       `gorm:"not null"                   json:"class_id"`
	TeacherID string    `gorm:"type:uuid;not null"         json:"teacher_id"`
	VersionedModel

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Class   *Class   `gorm:"foreignKey:ClassID"   json:"class,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Lesson) TableName() string { return "lessons" }
