package model

import "time"

// Attendance 出勤记录，对应 attendances
type Attendance struct {
	ID        int       `gorm:"primaryKey"         json:"id"`
	Date      time.Time `gorm:"not null"           json:"date"`
	Present   bool      `gorm:"not null"           json:"present"`
	StudentID string    `gorm:"type:uuid;not null" json:"student_id"`
	LessonID  int       `gorm:"not null"           json:"lesson_id"`
}

func (Attendance) TableName() string { return "attendances" }
