package dto

import (
	"school-hub/backend/internal/calendar"
	"school-hub/backend/internal/model"
)

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int        `json:"expires_in"` // Access Token 有效期（秒）
	User         MeResponse `json:"user"`
}

// MeResponse 当前登录身份
type MeResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ── 日历模块响应 ──

// ChildSchedule 家长视角：单个孩子及其班级本周课表
type ChildSchedule struct {
	StudentID string                    `json:"student_id"`
	Name      string                    `json:"name"`
	Surname   string                    `json:"surname"`
	ClassID   int                       `json:"class_id"`
	ClassName string                    `json:"class_name"`
	Events    []calendar.ProjectedEvent `json:"events"`
}

// ── 仪表盘响应 ──

// CountsResponse 各角色人数
type CountsResponse struct {
	Admins   int64 `json:"admins"`
	Teachers int64 `json:"teachers"`
	Students int64 `json:"students"`
	Parents  int64 `json:"parents"`
}

// SexCountResponse 学生性别分布
type SexCountResponse struct {
	Boys  int64 `json:"boys"`
	Girls int64 `json:"girls"`
}

// AttendanceDay 某个工作日的出勤统计
type AttendanceDay struct {
	Day     string `json:"day"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// ── 表单关联数据 ──

// RelatedData 表单下拉选项，按表单类型只填充需要的部分
type RelatedData struct {
	Teachers []model.Teacher     `json:"teachers,omitempty"`
	Subjects []model.Subject     `json:"subjects,omitempty"`
	Grades   []model.Grade       `json:"grades,omitempty"`
	Classes  []model.ClassOption `json:"classes,omitempty"`
	Lessons  []model.Lesson      `json:"lessons,omitempty"`
	Parents  []model.Parent      `json:"parents,omitempty"`
}
