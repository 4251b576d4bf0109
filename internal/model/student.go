package model

import "gorm.io/datatypes"

// Student 学生，对应 students
type Student struct {
	ID        string         `gorm:"type:uuid;primaryKey"       json:"id"`
	Username  string         `gorm:"type:varchar(20);not null"  json:"username"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Surname   string         `gorm:"type:varchar(100);not null" json:"surname"`
	Email     *string        `gorm:"type:varchar(255)"          json:"email,omitempty"`
	Phone     *string        `gorm:"type:varchar(30)"           json:"phone,omitempty"`
	Address   string         `gorm:"type:varchar(255);not null" json:"address"`
	Img       *string        `gorm:"type:varchar(500)"          json:"img,omitempty"`
	BloodType string         `gorm:"type:varchar(5);not null"   json:"blood_type"`
	Sex       string         `gorm:"type:varchar(6);not null"   json:"sex"`
	Birthday  datatypes.Date `gorm:"not null"                   json:"birthday"`
	ParentID  string         `gorm:"type:uuid;not null"         json:"parent_id"`
	ClassID   int            `gorm:"not null"                   json:"class_id"`
	GradeID   int            `gorm:"not null"                   json:"grade_id"`
	BaseModel

	// 关联
	Parent *Parent `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Class  *Class  `gorm:"foreignKey:ClassID"  json:"class,omitempty"`
	Grade  *Grade  `gorm:"foreignKey:GradeID"  json:"grade,omitempty"`
}

func (Student) TableName() string { return "students" }
