package dto

import "time"

// EventRequest 创建 / 更新活动；ClassID 为空表示全校活动
type EventRequest struct {
	Title       string    `json:"title"       binding:"required,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	StartTime   time.Time `json:"start_time"  binding:"required"`
	EndTime     time.Time `json:"end_time"    binding:"required"`
	ClassID     *int      `json:"class_id"    binding:"omitempty,min=1"`
}

// AnnouncementRequest 创建 / 更新公告；ClassID 为空表示全校公告
type AnnouncementRequest struct {
	Title       string    `json:"title"       binding:"required,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	Date        time.Time `json:"date"        binding:"required"`
	ClassID     *int      `json:"class_id"    binding:"omitempty,min=1"`
}
