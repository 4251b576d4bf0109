package model

import "time"

// Account 登录账号，对应 accounts；角色档案表主键复用账号 ID
type Account struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"type:varchar(20);not null;uniqueIndex"          json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string    `gorm:"type:varchar(10);not null"                      json:"role"` // admin | teacher | student | parent
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Admin 管理员，对应 admins
type Admin struct {
	ID       string `gorm:"type:uuid;primaryKey"          json:"id"`
	Username string `gorm:"type:varchar(20);not null"     json:"username"`
	BaseModel
}

func (Admin) TableName() string { return "admins" }
