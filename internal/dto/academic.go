package dto

import "time"

// ── 教学模块 DTO（科目 / 班级 / 课程） ──

// SubjectRequest 创建 / 更新科目
type SubjectRequest struct {
	Name     string   `json:"name"     binding:"required,max=100"`
	Teachers []string `json:"teachers" binding:"omitempty,dive,uuid"`
}

// ClassRequest 创建 / 更新班级
type ClassRequest struct {
	Name         string  `json:"name"          binding:"required,max=50"`
	Capacity     int     `json:"capacity"      binding:"required,min=1"`
	GradeID      int     `json:"grade_id"      binding:"required,min=1"`
	SupervisorID *string `json:"supervisor_id" binding:"omitempty,uuid"`
}

// LessonRequest 创建 / 更新课程；更新时需带上读取到的 Version
type LessonRequest struct {
	Name      string    `json:"name"       binding:"required,max=100"`
	Day       string    `json:"day"        binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time"   binding:"required"`
	SubjectID int       `json:"subject_id" binding:"required,min=1"`
	ClassID   int       `json:"class_id"   binding:"required,min=1"`
	TeacherID string    `json:"teacher_id" binding:"required,uuid"`
	Version   int       `json:"version"    binding:"omitempty,min=1"`
}
