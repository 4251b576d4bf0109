package dto

import "time"

// ExamRequest 创建 / 更新考试
type ExamRequest struct {
	Title     string    `json:"title"      binding:"required,max=200"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time"   binding:"required"`
	LessonID  int       `json:"lesson_id"  binding:"required,min=1"`
}

// AssignmentRequest 创建 / 更新作业
type AssignmentRequest struct {
	Title     string    `json:"title"      binding:"required,max=200"`
	StartDate time.Time `json:"start_date" binding:"required"`
	DueDate   time.Time `json:"due_date"   binding:"required"`
	LessonID  int       `json:"lesson_id"  binding:"required,min=1"`
}
