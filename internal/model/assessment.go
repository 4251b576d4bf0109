package model

import "time"

// Exam 考试，对应 exams
type Exam struct {
	ID        int       `gorm:"primaryKey"                 json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	StartTime time.Time `gorm:"not null"                   json:"start_time"`
	EndTime   time.Time `gorm:"not null"                   json:"end_time"`
	LessonID  int       `gorm:"not null"                   json:"lesson_id"`
	BaseModel

	Lesson *Lesson `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
}

func (Exam) TableName() string { return "exams" }

// Assignment 作业，对应 assignments
type Assignment struct {
	ID        int       `gorm:"primaryKey"                 json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	StartDate time.Time `gorm:"not null"                   json:"start_date"`
	DueDate   time.Time `gorm:"not null"                   json:"due_date"`
	LessonID  int       `gorm:"not null"                   json:"lesson_id"`
	BaseModel

	Lesson *Lesson `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
}

func (Assignment) TableName() string { return "assignments" }
