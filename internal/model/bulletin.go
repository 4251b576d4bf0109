package model

import "time"

// Event 活动，对应 events
type Event struct {
	ID          int       `gorm:"primaryKey"                 json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null"         json:"description"`
	StartTime   time.Time `gorm:"not null"                   json:"start_time"`
	EndTime     time.Time `gorm:"not null"                   json:"end_time"`
	ClassID     *int      `json:"class_id,omitempty"`
	BaseModel

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (Event) TableName() string { return "events" }

// Announcement 公告，对应 announcements；ClassID 为空表示全校通用
type Announcement struct {
	ID          int       `gorm:"primaryKey"                 json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text;not null"         json:"description"`
	Date        time.Time `gorm:"not null"                   json:"date"`
	ClassID     *int      `json:"class_id,omitempty"`
	BaseModel

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (Announcement) TableName() string { return "announcements" }
